package receipt

import (
	"context"
	"encoding/json"

	"github.com/example/storefront-demo/errmap"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// ReceiptPort is the port the API uses to request receipts.
type ReceiptPort interface {
	SendReceipt(ctx context.Context, saleID string) (*SendReceiptResponse, error)
}

// Adapter implements ReceiptPort over the receipt service container.
type Adapter struct {
	container mono.ServiceContainer
}

var _ ReceiptPort = (*Adapter)(nil)

// NewAdapter creates a new receipt adapter.
func NewAdapter(container mono.ServiceContainer) *Adapter {
	if container == nil {
		panic("receipt adapter requires non-nil ServiceContainer")
	}
	return &Adapter{container: container}
}

// SendReceipt mails the receipt of saleID to its customer.
func (a *Adapter) SendReceipt(ctx context.Context, saleID string) (*SendReceiptResponse, error) {
	var resp SendReceiptResponse
	err := helper.CallRequestReplyService(ctx, a.container, "send-receipt", json.Marshal, json.Unmarshal,
		&SendReceiptRequest{SaleID: saleID}, &resp)
	if err != nil {
		return nil, errmap.Match(err, ErrSaleNotFound, ErrNoCustomerEmail)
	}
	return &resp, nil
}
