// Package sale holds the sale aggregate: a header and its ordered line items.
package sale

import (
	"time"

	"github.com/example/storefront-demo/domain/catalog"
	"github.com/example/storefront-demo/domain/customer"
	"github.com/shopspring/decimal"
)

// Conventional status labels. Status is not a state machine; any label is accepted.
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Sale is the aggregate root. Total always equals SubTotal + Tax - Discount and
// SubTotal always equals the sum of the details' SubTotal.
type Sale struct {
	ID            string             `gorm:"primarykey;size:36" json:"id"`
	CustomerID    string             `gorm:"size:36;not null;index" json:"customer_id"`
	Customer      *customer.Customer `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"customer,omitempty"`
	SaleDate      time.Time          `gorm:"not null;index" json:"sale_date"`
	SubTotal      decimal.Decimal    `gorm:"type:text;not null" json:"subtotal"`
	Tax           decimal.Decimal    `gorm:"type:text;not null" json:"tax"`
	Discount      decimal.Decimal    `gorm:"type:text;not null" json:"discount"`
	Total         decimal.Decimal    `gorm:"type:text;not null" json:"total"`
	Status        string             `gorm:"size:50;not null" json:"status"`
	PaymentMethod string             `gorm:"size:50" json:"payment_method,omitempty"`
	Notes         string             `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Details       []SaleDetail       `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"details"`
}

// TableName returns the table name for Sale model.
func (Sale) TableName() string {
	return "sales"
}

// SaleDetail is one line item. UnitPrice is captured at sale time and never
// re-read from the product.
type SaleDetail struct {
	ID        string           `gorm:"primarykey;size:36" json:"id"`
	SaleID    string           `gorm:"size:36;not null;index" json:"sale_id"`
	LineNo    int              `gorm:"not null" json:"line_no"`
	ProductID string           `gorm:"size:36;not null;index" json:"product_id"`
	Product   *catalog.Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"product,omitempty"`
	Quantity  int              `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal  `gorm:"type:text;not null" json:"unit_price"`
	Discount  decimal.Decimal  `gorm:"type:text;not null" json:"discount"`
	SubTotal  decimal.Decimal  `gorm:"type:text;not null" json:"subtotal"`
}

// TableName returns the table name for SaleDetail model.
func (SaleDetail) TableName() string {
	return "sale_details"
}

// ProductIDs returns the distinct product ids referenced by the sale's details,
// in first-seen order.
func (s *Sale) ProductIDs() []string {
	seen := make(map[string]struct{}, len(s.Details))
	ids := make([]string, 0, len(s.Details))
	for _, d := range s.Details {
		if _, ok := seen[d.ProductID]; ok {
			continue
		}
		seen[d.ProductID] = struct{}{}
		ids = append(ids, d.ProductID)
	}
	return ids
}
