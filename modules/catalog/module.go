// Package catalog provides product management services with a Redis read cache.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	domain "github.com/example/storefront-demo/domain/catalog"
	"github.com/example/storefront-demo/events"
	"github.com/example/storefront-demo/modules/cache"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"
)

// Module exposes the catalog over request/reply services and keeps the
// product cache coherent with committed sales.
type Module struct {
	service *Service
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.EventConsumerModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates the catalog module.
func NewModule(db *gorm.DB, c cache.CacheService) *Module {
	return &Module{
		service: NewService(NewRepository(db), c),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the underlying service.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create", json.Unmarshal, json.Marshal, m.createProduct,
	); err != nil {
		return fmt.Errorf("failed to register create service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.getProduct,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.listProducts,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update", json.Unmarshal, json.Marshal, m.updateProduct,
	); err != nil {
		return fmt.Errorf("failed to register update service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete", json.Unmarshal, json.Marshal, m.deleteProduct,
	); err != nil {
		return fmt.Errorf("failed to register delete service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "cache-stats", json.Unmarshal, json.Marshal, m.cacheStats,
	); err != nil {
		return fmt.Errorf("failed to register cache-stats service: %w", err)
	}

	log.Printf("[catalog] Registered services: services.catalog.{create,get,list,update,delete,cache-stats}")
	return nil
}

// RegisterEventConsumers subscribes to sale events so cached stock levels
// never outlive a committed sale.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.SaleCreatedV1, m.handleSaleCreated, m); err != nil {
		return fmt.Errorf("failed to register SaleCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.SaleUpdatedV1, m.handleSaleUpdated, m); err != nil {
		return fmt.Errorf("failed to register SaleUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.SaleDeletedV1, m.handleSaleDeleted, m); err != nil {
		return fmt.Errorf("failed to register SaleDeleted consumer: %w", err)
	}

	log.Printf("[catalog] Registered event consumers: SaleCreated, SaleUpdated, SaleDeleted")
	return nil
}

// Start starts the module.
func (m *Module) Start(_ context.Context) error {
	log.Println("[catalog] Module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[catalog] Module stopped")
	return nil
}

// Health reports the cache hit rate alongside module liveness.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	stats := m.service.CacheStats()
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"cache_enabled": stats.Enabled,
			"cache_hits":    stats.Hits,
			"cache_misses":  stats.Misses,
		},
	}
}

func (m *Module) createProduct(ctx context.Context, req CreateProductRequest, _ *mono.Msg) (domain.Product, error) {
	p, err := m.service.Create(ctx, req)
	if err != nil {
		return domain.Product{}, err
	}
	return *p, nil
}

func (m *Module) getProduct(ctx context.Context, req GetProductRequest, _ *mono.Msg) (domain.Product, error) {
	p, err := m.service.Get(ctx, req.ID)
	if err != nil {
		return domain.Product{}, err
	}
	return *p, nil
}

func (m *Module) listProducts(ctx context.Context, req ListProductsRequest, _ *mono.Msg) (ListProductsResponse, error) {
	return m.service.List(ctx, req)
}

func (m *Module) updateProduct(ctx context.Context, req UpdateProductRequest, _ *mono.Msg) (domain.Product, error) {
	if req.ID == "" {
		return domain.Product{}, fmt.Errorf("%w: id is required", ErrInvalidProduct)
	}
	p, err := m.service.Update(ctx, req)
	if err != nil {
		return domain.Product{}, err
	}
	return *p, nil
}

func (m *Module) deleteProduct(ctx context.Context, req DeleteProductRequest, _ *mono.Msg) (DeleteProductResponse, error) {
	if req.ID == "" {
		return DeleteProductResponse{}, fmt.Errorf("%w: id is required", ErrInvalidProduct)
	}
	if err := m.service.Delete(ctx, req.ID); err != nil {
		return DeleteProductResponse{ID: req.ID}, err
	}
	return DeleteProductResponse{ID: req.ID, Deleted: true}, nil
}

func (m *Module) cacheStats(_ context.Context, _ struct{}, _ *mono.Msg) (cache.StatsSnapshot, error) {
	return m.service.CacheStats(), nil
}

func (m *Module) handleSaleCreated(ctx context.Context, event events.SaleCreatedEvent, _ *mono.Msg) error {
	m.service.Invalidate(ctx, event.ProductIDs...)
	return nil
}

func (m *Module) handleSaleUpdated(ctx context.Context, event events.SaleUpdatedEvent, _ *mono.Msg) error {
	m.service.Invalidate(ctx, event.ProductIDs...)
	return nil
}

func (m *Module) handleSaleDeleted(ctx context.Context, event events.SaleDeletedEvent, _ *mono.Msg) error {
	m.service.Invalidate(ctx, event.ProductIDs...)
	return nil
}
