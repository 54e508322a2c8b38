package catalog

import (
	domain "github.com/example/storefront-demo/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents the request to create a product.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	SKU         string          `json:"sku"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Unit        string          `json:"unit,omitempty"`
	Category    string          `json:"category,omitempty"`
}

// UpdateProductRequest replaces the editable fields of a product.
type UpdateProductRequest struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	SKU         string          `json:"sku"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Unit        string          `json:"unit,omitempty"`
	Category    string          `json:"category,omitempty"`
	IsActive    bool            `json:"is_active"`
}

// GetProductRequest represents the request to get a product by ID.
type GetProductRequest struct {
	ID string `json:"id"`
}

// ListProductsRequest selects a page of products. Page is 1-indexed.
type ListProductsRequest struct {
	Page            int  `json:"page"`
	PageSize        int  `json:"page_size"`
	IncludeInactive bool `json:"include_inactive"`
}

// ListProductsResponse contains one page of products.
type ListProductsResponse struct {
	Products []domain.Product `json:"products"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// DeleteProductRequest represents the request to deactivate a product.
type DeleteProductRequest struct {
	ID string `json:"id"`
}

// DeleteProductResponse represents the response after deactivating a product.
type DeleteProductResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// InvalidateRequest asks the catalog to drop cached entries for products.
type InvalidateRequest struct {
	ProductIDs []string `json:"product_ids"`
}
