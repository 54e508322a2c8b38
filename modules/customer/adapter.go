package customer

import (
	"context"
	"encoding/json"

	domain "github.com/example/storefront-demo/domain/customer"
	"github.com/example/storefront-demo/errmap"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// CustomerPort is what other modules use to reach customer services.
type CustomerPort interface {
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*domain.Customer, error)
	GetCustomer(ctx context.Context, id string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, req ListCustomersRequest) (*ListCustomersResponse, error)
	UpdateCustomer(ctx context.Context, req UpdateCustomerRequest) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
}

// Adapter implements CustomerPort over the customer service container.
type Adapter struct {
	container mono.ServiceContainer
}

var _ CustomerPort = (*Adapter)(nil)

// NewAdapter creates a new customer adapter.
func NewAdapter(container mono.ServiceContainer) *Adapter {
	if container == nil {
		panic("customer adapter requires non-nil ServiceContainer")
	}
	return &Adapter{container: container}
}

func (a *Adapter) call(ctx context.Context, service string, req, resp any) error {
	err := helper.CallRequestReplyService(ctx, a.container, service, json.Marshal, json.Unmarshal, req, resp)
	return errmap.Match(err, ErrCustomerNotFound, ErrDocumentExists, ErrInvalidCustomer)
}

// CreateCustomer creates a customer.
func (a *Adapter) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*domain.Customer, error) {
	var resp domain.Customer
	if err := a.call(ctx, "create", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetCustomer retrieves a customer by ID.
func (a *Adapter) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	var resp domain.Customer
	if err := a.call(ctx, "get", &GetCustomerRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListCustomers retrieves a page of customers.
func (a *Adapter) ListCustomers(ctx context.Context, req ListCustomersRequest) (*ListCustomersResponse, error) {
	var resp ListCustomersResponse
	if err := a.call(ctx, "list", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateCustomer replaces a customer's editable fields.
func (a *Adapter) UpdateCustomer(ctx context.Context, req UpdateCustomerRequest) (*domain.Customer, error) {
	var resp domain.Customer
	if err := a.call(ctx, "update", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteCustomer deactivates a customer.
func (a *Adapter) DeleteCustomer(ctx context.Context, id string) error {
	var resp DeleteCustomerResponse
	return a.call(ctx, "delete", &DeleteCustomerRequest{ID: id}, &resp)
}
