package catalog

import (
	"context"
	"encoding/json"

	domain "github.com/example/storefront-demo/domain/catalog"
	"github.com/example/storefront-demo/errmap"
	"github.com/example/storefront-demo/modules/cache"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// CatalogPort is what other modules use to reach the catalog.
type CatalogPort interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, req ListProductsRequest) (*ListProductsResponse, error)
	UpdateProduct(ctx context.Context, req UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	CacheStats(ctx context.Context) (*cache.StatsSnapshot, error)
}

// Adapter implements CatalogPort over the catalog service container.
type Adapter struct {
	container mono.ServiceContainer
}

var _ CatalogPort = (*Adapter)(nil)

// NewAdapter creates a new catalog adapter.
func NewAdapter(container mono.ServiceContainer) *Adapter {
	if container == nil {
		panic("catalog adapter requires non-nil ServiceContainer")
	}
	return &Adapter{container: container}
}

func (a *Adapter) call(ctx context.Context, service string, req, resp any) error {
	err := helper.CallRequestReplyService(ctx, a.container, service, json.Marshal, json.Unmarshal, req, resp)
	return errmap.Match(err, ErrProductNotFound, ErrSKUExists, ErrInvalidProduct)
}

// CreateProduct creates a product.
func (a *Adapter) CreateProduct(ctx context.Context, req CreateProductRequest) (*domain.Product, error) {
	var resp domain.Product
	if err := a.call(ctx, "create", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetProduct retrieves a product by ID.
func (a *Adapter) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var resp domain.Product
	if err := a.call(ctx, "get", &GetProductRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListProducts retrieves a page of products.
func (a *Adapter) ListProducts(ctx context.Context, req ListProductsRequest) (*ListProductsResponse, error) {
	var resp ListProductsResponse
	if err := a.call(ctx, "list", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateProduct replaces a product's editable fields.
func (a *Adapter) UpdateProduct(ctx context.Context, req UpdateProductRequest) (*domain.Product, error) {
	var resp domain.Product
	if err := a.call(ctx, "update", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteProduct deactivates a product.
func (a *Adapter) DeleteProduct(ctx context.Context, id string) error {
	var resp DeleteProductResponse
	return a.call(ctx, "delete", &DeleteProductRequest{ID: id}, &resp)
}

// CacheStats returns the catalog cache counters.
func (a *Adapter) CacheStats(ctx context.Context) (*cache.StatsSnapshot, error) {
	var resp cache.StatsSnapshot
	if err := a.call(ctx, "cache-stats", &struct{}{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
