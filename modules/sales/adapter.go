package sales

import (
	"context"
	"encoding/json"

	"github.com/example/storefront-demo/domain/sale"
	"github.com/example/storefront-demo/errmap"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// SalesPort is what other modules use to run the sale workflow.
type SalesPort interface {
	CreateSale(ctx context.Context, cmd SaleCommand) (*sale.Sale, error)
	GetSale(ctx context.Context, id string) (*sale.Sale, error)
	ListSales(ctx context.Context, page, pageSize int) ([]sale.Sale, error)
	ListSalesByCustomer(ctx context.Context, customerID string) ([]sale.Sale, error)
	UpdateSale(ctx context.Context, id string, cmd SaleCommand) error
	DeleteSale(ctx context.Context, id string) error
}

// Adapter implements SalesPort over the sales service container.
type Adapter struct {
	container mono.ServiceContainer
}

var _ SalesPort = (*Adapter)(nil)

// NewAdapter creates a new sales adapter.
func NewAdapter(container mono.ServiceContainer) *Adapter {
	if container == nil {
		panic("sales adapter requires non-nil ServiceContainer")
	}
	return &Adapter{container: container}
}

func (a *Adapter) call(ctx context.Context, service string, req, resp any) error {
	err := helper.CallRequestReplyService(ctx, a.container, service, json.Marshal, json.Unmarshal, req, resp)
	return errmap.Match(err, workflowErrors...)
}

// CreateSale records a new sale.
func (a *Adapter) CreateSale(ctx context.Context, cmd SaleCommand) (*sale.Sale, error) {
	var resp sale.Sale
	if err := a.call(ctx, "create", &cmd, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSale retrieves a sale by ID.
func (a *Adapter) GetSale(ctx context.Context, id string) (*sale.Sale, error) {
	var resp sale.Sale
	if err := a.call(ctx, "get", &GetSaleRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListSales retrieves a page of sales.
func (a *Adapter) ListSales(ctx context.Context, page, pageSize int) ([]sale.Sale, error) {
	var resp ListSalesResponse
	if err := a.call(ctx, "list", &ListSalesRequest{Page: page, PageSize: pageSize}, &resp); err != nil {
		return nil, err
	}
	return resp.Sales, nil
}

// ListSalesByCustomer retrieves every sale of a customer.
func (a *Adapter) ListSalesByCustomer(ctx context.Context, customerID string) ([]sale.Sale, error) {
	var resp ListSalesResponse
	if err := a.call(ctx, "list-by-customer", &ListSalesByCustomerRequest{CustomerID: customerID}, &resp); err != nil {
		return nil, err
	}
	return resp.Sales, nil
}

// UpdateSale replaces a sale's header and lines.
func (a *Adapter) UpdateSale(ctx context.Context, id string, cmd SaleCommand) error {
	var resp SaleChangedResponse
	return a.call(ctx, "update", &UpdateSaleRequest{ID: id, SaleCommand: cmd}, &resp)
}

// DeleteSale removes a sale and restores its stock.
func (a *Adapter) DeleteSale(ctx context.Context, id string) error {
	var resp SaleChangedResponse
	return a.call(ctx, "delete", &DeleteSaleRequest{ID: id}, &resp)
}
