// Package catalog holds the product entity shared by the catalog and sales modules.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a sellable item in the catalog.
// Products are never hard-deleted; Delete clears IsActive.
type Product struct {
	ID          string          `gorm:"primarykey;size:36" json:"id"`
	Name        string          `gorm:"size:200;not null" json:"name"`
	Description string          `gorm:"size:500" json:"description,omitempty"`
	SKU         string          `gorm:"size:50;not null;uniqueIndex" json:"sku"`
	Price       decimal.Decimal `gorm:"type:text;not null" json:"price"`
	Stock       int             `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	Unit        string          `gorm:"size:50" json:"unit,omitempty"`
	Category    string          `gorm:"size:100;index" json:"category,omitempty"`
	IsActive    bool            `gorm:"not null;index" json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName returns the table name for Product model.
func (Product) TableName() string {
	return "products"
}
