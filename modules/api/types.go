package api

import (
	"time"

	catalogdomain "github.com/example/storefront-demo/domain/catalog"
	"github.com/example/storefront-demo/domain/sale"
	"github.com/example/storefront-demo/modules/sales"
	"github.com/shopspring/decimal"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// CredentialsRequest is the body of register and login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// ProfileResponse describes the authenticated user.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductResponse renders a product with a fixed two-place price.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SKU         string    `json:"sku"`
	Price       string    `json:"price"`
	Stock       int       `json:"stock"`
	Unit        string    `json:"unit,omitempty"`
	Category    string    `json:"category,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toProductResponse(p *catalogdomain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		SKU:         p.SKU,
		Price:       p.Price.StringFixed(2),
		Stock:       p.Stock,
		Unit:        p.Unit,
		Category:    p.Category,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// SaleItemRequest is one requested line.
type SaleItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
}

// SaleRequest is the body of create and update sale.
type SaleRequest struct {
	CustomerID    string            `json:"customer_id"`
	SaleDate      *time.Time        `json:"sale_date,omitempty"`
	Tax           decimal.Decimal   `json:"tax"`
	Discount      decimal.Decimal   `json:"discount"`
	Status        string            `json:"status,omitempty"`
	PaymentMethod string            `json:"payment_method,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	Items         []SaleItemRequest `json:"items"`
}

func (r SaleRequest) toCommand() sales.SaleCommand {
	cmd := sales.SaleCommand{
		CustomerID:    r.CustomerID,
		SaleDate:      r.SaleDate,
		Tax:           r.Tax,
		Discount:      r.Discount,
		Status:        r.Status,
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
		Lines:         make([]sales.LineItem, 0, len(r.Items)),
	}
	for _, it := range r.Items {
		cmd.Lines = append(cmd.Lines, sales.LineItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  it.Discount,
		})
	}
	return cmd
}

// SaleItemResponse is one resolved sale line.
type SaleItemResponse struct {
	ID          string `json:"id"`
	LineNo      int    `json:"line_no"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	ProductSKU  string `json:"product_sku,omitempty"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Discount    string `json:"discount"`
	SubTotal    string `json:"subtotal"`
}

// SaleResponse is a fully resolved sale with money rendered to two places.
type SaleResponse struct {
	ID            string             `json:"id"`
	CustomerID    string             `json:"customer_id"`
	CustomerName  string             `json:"customer_name,omitempty"`
	SaleDate      time.Time          `json:"sale_date"`
	SubTotal      string             `json:"subtotal"`
	Tax           string             `json:"tax"`
	Discount      string             `json:"discount"`
	Total         string             `json:"total"`
	Status        string             `json:"status"`
	PaymentMethod string             `json:"payment_method,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Items         []SaleItemResponse `json:"items"`
}

func toSaleResponse(s *sale.Sale) SaleResponse {
	resp := SaleResponse{
		ID:            s.ID,
		CustomerID:    s.CustomerID,
		SaleDate:      s.SaleDate,
		SubTotal:      s.SubTotal.StringFixed(2),
		Tax:           s.Tax.StringFixed(2),
		Discount:      s.Discount.StringFixed(2),
		Total:         s.Total.StringFixed(2),
		Status:        s.Status,
		PaymentMethod: s.PaymentMethod,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
		Items:         make([]SaleItemResponse, 0, len(s.Details)),
	}
	if s.Customer != nil {
		resp.CustomerName = s.Customer.FullName()
	}
	for _, d := range s.Details {
		item := SaleItemResponse{
			ID:        d.ID,
			LineNo:    d.LineNo,
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice.StringFixed(2),
			Discount:  d.Discount.StringFixed(2),
			SubTotal:  d.SubTotal.StringFixed(2),
		}
		if d.Product != nil {
			item.ProductName = d.Product.Name
			item.ProductSKU = d.Product.SKU
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}

func toSaleResponses(list []sale.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(list))
	for i := range list {
		out = append(out, toSaleResponse(&list[i]))
	}
	return out
}

// PageResponse wraps a page of results.
type PageResponse[T any] struct {
	Data     []T `json:"data"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}
