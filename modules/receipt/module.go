// Package receipt renders HTML receipts for sales and tracks sale
// announcements from the event bus.
package receipt

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/example/storefront-demo/config"
	"github.com/example/storefront-demo/events"
	"github.com/example/storefront-demo/modules/sales"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// Module sends receipts on request and records every announced sale.
type Module struct {
	service *Service
}

var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.DependentModule = (*Module)(nil)
var _ mono.EventConsumerModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates the receipt module. A nil mailer logs receipts.
func NewModule(cfg config.ReceiptConfig, mailer Mailer) *Module {
	return &Module{service: NewService(cfg, mailer, nil)}
}

func (m *Module) Name() string {
	return "receipt"
}

// Service returns the underlying service.
func (m *Module) Service() *Service {
	return m.service
}

func (m *Module) Dependencies() []string {
	return []string{"sales"}
}

func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "sales" {
		m.service.SetSaleSource(sales.NewAdapter(container))
	}
}

func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "send-receipt", json.Unmarshal, json.Marshal, m.sendReceipt,
	); err != nil {
		return fmt.Errorf("failed to register send-receipt service: %w", err)
	}

	log.Printf("[receipt] Registered services: send-receipt")
	return nil
}

func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.SaleCreatedV1, m.handleSaleCreated, m); err != nil {
		return fmt.Errorf("failed to register SaleCreated consumer: %w", err)
	}

	log.Printf("[receipt] Registered event consumers: SaleCreated")
	return nil
}

func (m *Module) Start(_ context.Context) error {
	log.Println("[receipt] Module started (depends on: sales)")
	return nil
}

func (m *Module) Stop(_ context.Context) error {
	log.Println("[receipt] Module stopped")
	return nil
}

func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"notices":       len(m.service.Notices()),
			"receipts_sent": m.service.Sent(),
		},
	}
}

func (m *Module) sendReceipt(ctx context.Context, req SendReceiptRequest, _ *mono.Msg) (SendReceiptResponse, error) {
	msg, err := m.service.Send(ctx, req.SaleID)
	if err != nil {
		return SendReceiptResponse{SaleID: req.SaleID}, err
	}
	return SendReceiptResponse{SaleID: req.SaleID, To: msg.To, Subject: msg.Subject}, nil
}

func (m *Module) handleSaleCreated(_ context.Context, event events.SaleCreatedEvent, _ *mono.Msg) error {
	log.Printf("[receipt] Sale created: %s for customer %s (total %s)", event.SaleID, event.CustomerID, event.Total)
	m.service.Record(Notice{
		SaleID:     event.SaleID,
		CustomerID: event.CustomerID,
		Total:      event.Total,
		ReceivedAt: time.Now(),
	})
	return nil
}
