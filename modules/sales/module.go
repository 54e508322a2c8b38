// Package sales implements the transactional sale workflow: stock is checked
// and deducted, and the sale persisted, in one unit of work.
package sales

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/storefront-demo/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"
)

// Module exposes the sale workflow as request/reply services and announces
// committed changes on the event bus.
type Module struct {
	service  *Service
	eventBus mono.EventBus
}

var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.EventEmitterModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates the sales module over db.
func NewModule(db *gorm.DB) *Module {
	return &Module{
		service: NewService(NewGormUnitOfWork(db)),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "sales"
}

// Service returns the underlying workflow.
func (m *Module) Service() *Service {
	return m.service
}

// SetEventBus is called by the framework to inject the event bus.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.SaleCreatedV1.ToBase(),
		events.SaleUpdatedV1.ToBase(),
		events.SaleDeletedV1.ToBase(),
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create", json.Unmarshal, json.Marshal, m.createSale,
	); err != nil {
		return fmt.Errorf("failed to register create service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.getSale,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.listSales,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list-by-customer", json.Unmarshal, json.Marshal, m.listSalesByCustomer,
	); err != nil {
		return fmt.Errorf("failed to register list-by-customer service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update", json.Unmarshal, json.Marshal, m.updateSale,
	); err != nil {
		return fmt.Errorf("failed to register update service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete", json.Unmarshal, json.Marshal, m.deleteSale,
	); err != nil {
		return fmt.Errorf("failed to register delete service: %w", err)
	}

	log.Printf("[sales] Registered services: services.sales.{create,get,list,list-by-customer,update,delete}")
	return nil
}

// Start starts the module.
func (m *Module) Start(_ context.Context) error {
	if m.eventBus == nil {
		log.Println("[sales] Warning: eventBus not set, events will not be published")
	}
	log.Println("[sales] Module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[sales] Module stopped")
	return nil
}

// Health reports whether committed changes are being announced.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"events_enabled": m.eventBus != nil,
		},
	}
}
