package sales

import (
	"time"

	"github.com/example/storefront-demo/domain/sale"
	"github.com/shopspring/decimal"
)

// LineItem is one requested sale line. UnitPrice is taken as given and
// captured on the detail.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
}

// SaleCommand carries the fields of a create or a full-replacement update.
// A nil SaleDate means now on create and unchanged on update; an empty
// Status means Completed on create and unchanged on update.
type SaleCommand struct {
	CustomerID    string          `json:"customer_id"`
	SaleDate      *time.Time      `json:"sale_date,omitempty"`
	Tax           decimal.Decimal `json:"tax"`
	Discount      decimal.Decimal `json:"discount"`
	Status        string          `json:"status,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Lines         []LineItem      `json:"lines"`
}

// UpdateSaleRequest replaces a sale's header and lines.
type UpdateSaleRequest struct {
	ID string `json:"id"`
	SaleCommand
}

// GetSaleRequest represents the request to get a sale by ID.
type GetSaleRequest struct {
	ID string `json:"id"`
}

// ListSalesRequest selects a page of sales. Page is 1-indexed.
type ListSalesRequest struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// ListSalesByCustomerRequest selects every sale of one customer.
type ListSalesByCustomerRequest struct {
	CustomerID string `json:"customer_id"`
}

// ListSalesResponse contains sales, newest first.
type ListSalesResponse struct {
	Sales []sale.Sale `json:"sales"`
}

// DeleteSaleRequest represents the request to delete a sale.
type DeleteSaleRequest struct {
	ID string `json:"id"`
}

// SaleChangedResponse acknowledges an update or a delete.
type SaleChangedResponse struct {
	ID      string `json:"id"`
	Changed bool   `json:"changed"`
}
