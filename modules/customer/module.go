// Package customer provides customer management services.
package customer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	domain "github.com/example/storefront-demo/domain/customer"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"
)

// Module provides customer services.
type Module struct {
	service *Service
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates the customer module.
func NewModule(db *gorm.DB) *Module {
	return &Module{service: NewService(NewRepository(db))}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "customer"
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create", json.Unmarshal, json.Marshal, m.createCustomer,
	); err != nil {
		return fmt.Errorf("failed to register create service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.getCustomer,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.listCustomers,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update", json.Unmarshal, json.Marshal, m.updateCustomer,
	); err != nil {
		return fmt.Errorf("failed to register update service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete", json.Unmarshal, json.Marshal, m.deleteCustomer,
	); err != nil {
		return fmt.Errorf("failed to register delete service: %w", err)
	}

	log.Printf("[customer] Registered services: services.customer.{create,get,list,update,delete}")
	return nil
}

// Start starts the module.
func (m *Module) Start(_ context.Context) error {
	log.Println("[customer] Module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[customer] Module stopped")
	return nil
}

func (m *Module) createCustomer(ctx context.Context, req CreateCustomerRequest, _ *mono.Msg) (domain.Customer, error) {
	c, err := m.service.Create(ctx, req)
	if err != nil {
		return domain.Customer{}, err
	}
	log.Printf("[customer] Created customer %s", c.ID)
	return *c, nil
}

func (m *Module) getCustomer(ctx context.Context, req GetCustomerRequest, _ *mono.Msg) (domain.Customer, error) {
	c, err := m.service.Get(ctx, req.ID)
	if err != nil {
		return domain.Customer{}, err
	}
	return *c, nil
}

func (m *Module) listCustomers(ctx context.Context, req ListCustomersRequest, _ *mono.Msg) (ListCustomersResponse, error) {
	return m.service.List(ctx, req)
}

func (m *Module) updateCustomer(ctx context.Context, req UpdateCustomerRequest, _ *mono.Msg) (domain.Customer, error) {
	c, err := m.service.Update(ctx, req)
	if err != nil {
		return domain.Customer{}, err
	}
	return *c, nil
}

func (m *Module) deleteCustomer(ctx context.Context, req DeleteCustomerRequest, _ *mono.Msg) (DeleteCustomerResponse, error) {
	if err := m.service.Delete(ctx, req.ID); err != nil {
		return DeleteCustomerResponse{ID: req.ID}, err
	}
	return DeleteCustomerResponse{ID: req.ID, Deleted: true}, nil
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{Healthy: true, Message: "operational"}
}
