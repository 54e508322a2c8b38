package receipt

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/example/storefront-demo/domain/sale"
)

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Receipt {{.OrderNumber}}</title></head>
<body style="font-family: Arial, sans-serif; color: #333;">
<h2>Thank you for your purchase, {{.CustomerName}}!</h2>
<p>Order <strong>{{.OrderNumber}}</strong> placed on {{.Date}}.</p>
{{if .PaymentMethod}}<p>Payment method: {{.PaymentMethod}}</p>{{end}}
<table style="border-collapse: collapse; width: 100%;">
<thead>
<tr><th align="left">Product</th><th align="right">Qty</th><th align="right">Unit price</th><th align="right">Discount</th><th align="right">Subtotal</th></tr>
</thead>
<tbody>
{{range .Lines}}<tr><td>{{.Product}}</td><td align="right">{{.Quantity}}</td><td align="right">{{.UnitPrice}}</td><td align="right">{{.Discount}}</td><td align="right">{{.SubTotal}}</td></tr>
{{end}}</tbody>
</table>
<p>Subtotal: {{.SubTotal}}<br>Tax: {{.Tax}}<br>Discount: {{.Discount}}<br><strong>Total: {{.Total}}</strong></p>
{{if .Notes}}<p>Notes: {{.Notes}}</p>{{end}}
<p>{{.Sender}}</p>
</body>
</html>
`))

type receiptLine struct {
	Product   string
	Quantity  int
	UnitPrice string
	Discount  string
	SubTotal  string
}

type receiptView struct {
	OrderNumber   string
	Date          string
	CustomerName  string
	PaymentMethod string
	Lines         []receiptLine
	SubTotal      string
	Tax           string
	Discount      string
	Total         string
	Notes         string
	Sender        string
}

// OrderNumber derives the short order reference shown to customers.
func OrderNumber(s *sale.Sale) string {
	id := strings.ReplaceAll(s.ID, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return "ORD-" + strings.ToUpper(id)
}

// Render produces the HTML receipt for a fully resolved sale.
func Render(s *sale.Sale, sender string) (string, error) {
	view := receiptView{
		OrderNumber:   OrderNumber(s),
		Date:          s.SaleDate.Format("2006-01-02 15:04"),
		PaymentMethod: s.PaymentMethod,
		SubTotal:      s.SubTotal.StringFixed(2),
		Tax:           s.Tax.StringFixed(2),
		Discount:      s.Discount.StringFixed(2),
		Total:         s.Total.StringFixed(2),
		Notes:         s.Notes,
		Sender:        sender,
	}
	if s.Customer != nil {
		view.CustomerName = s.Customer.FullName()
	}
	for _, d := range s.Details {
		name := d.ProductID
		if d.Product != nil {
			name = d.Product.Name
		}
		view.Lines = append(view.Lines, receiptLine{
			Product:   name,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice.StringFixed(2),
			Discount:  d.Discount.StringFixed(2),
			SubTotal:  d.SubTotal.StringFixed(2),
		})
	}

	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.String(), nil
}
