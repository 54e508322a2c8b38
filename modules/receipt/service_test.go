package receipt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/storefront-demo/config"
	"github.com/example/storefront-demo/domain/catalog"
	"github.com/example/storefront-demo/domain/customer"
	"github.com/example/storefront-demo/domain/sale"
	"github.com/example/storefront-demo/events"
	"github.com/example/storefront-demo/modules/sales"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSales map[string]*sale.Sale

func (s stubSales) GetSale(_ context.Context, id string) (*sale.Sale, error) {
	if sl, ok := s[id]; ok {
		return sl, nil
	}
	return nil, sales.ErrSaleNotFound
}

type captureMailer struct {
	sent []Message
	err  error
}

func (m *captureMailer) Send(_ context.Context, msg Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func sampleSale(email string) *sale.Sale {
	return &sale.Sale{
		ID:            "5f2b6c1e-1111-2222-3333-444455556666",
		CustomerID:    "cust-1",
		Customer:      &customer.Customer{ID: "cust-1", FirstName: "Ada", LastName: "Lovelace", Email: email},
		SaleDate:      time.Date(2024, 5, 4, 10, 30, 0, 0, time.UTC),
		SubTotal:      decimal.RequireFromString("15"),
		Tax:           decimal.RequireFromString("1"),
		Discount:      decimal.Zero,
		Total:         decimal.RequireFromString("16"),
		Status:        sale.StatusCompleted,
		PaymentMethod: "Card",
		Notes:         "<leave at door>",
		Details: []sale.SaleDetail{{
			ProductID: "A",
			Product:   &catalog.Product{ID: "A", Name: "Coffee Beans"},
			Quantity:  3,
			UnitPrice: decimal.RequireFromString("5"),
			SubTotal:  decimal.RequireFromString("15"),
		}},
	}
}

var testReceiptConfig = config.ReceiptConfig{Sender: "noreply@shop.test", SenderName: "Shop"}

func TestSendReceipt(t *testing.T) {
	sl := sampleSale("ada@example.com")
	mailer := &captureMailer{}
	svc := NewService(testReceiptConfig, mailer, stubSales{sl.ID: sl})

	msg, err := svc.Send(context.Background(), sl.ID)
	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)

	assert.Equal(t, "ada@example.com", msg.To)
	assert.Equal(t, "Ada Lovelace", msg.ToName)
	assert.Equal(t, "noreply@shop.test", msg.From)
	assert.Equal(t, "Your receipt for order ORD-5F2B6C1E", msg.Subject)
	assert.Contains(t, msg.HTML, "Coffee Beans")
	assert.Contains(t, msg.HTML, "Total: 16.00")
	assert.Contains(t, msg.HTML, "Payment method: Card")
	assert.Contains(t, msg.HTML, "&lt;leave at door&gt;")
	assert.Equal(t, 1, svc.Sent())
}

func TestSendReceiptFailures(t *testing.T) {
	noEmail := sampleSale("")

	tests := []struct {
		name   string
		id     string
		mailer *captureMailer
		want   error
	}{
		{"unknown sale", "missing", &captureMailer{}, ErrSaleNotFound},
		{"customer without email", noEmail.ID, &captureMailer{}, ErrNoCustomerEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(testReceiptConfig, tt.mailer, stubSales{noEmail.ID: noEmail})
			_, err := svc.Send(context.Background(), tt.id)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, tt.mailer.sent)
			assert.Zero(t, svc.Sent())
		})
	}
}

func TestSendReceiptMailerError(t *testing.T) {
	sl := sampleSale("ada@example.com")
	svc := NewService(testReceiptConfig, &captureMailer{err: errors.New("smtp down")}, stubSales{sl.ID: sl})

	_, err := svc.Send(context.Background(), sl.ID)
	assert.ErrorContains(t, err, "smtp down")
	assert.Zero(t, svc.Sent())
}

func TestSendReceiptWithoutSource(t *testing.T) {
	svc := NewService(testReceiptConfig, nil, nil)
	_, err := svc.Send(context.Background(), "any")
	assert.Error(t, err)
}

func TestModuleRecordsSaleCreated(t *testing.T) {
	m := NewModule(testReceiptConfig, nil)
	event := events.SaleCreatedEvent{SaleID: "s1", CustomerID: "c1", Total: "16.00", ProductIDs: []string{"A"}}

	require.NoError(t, m.handleSaleCreated(context.Background(), event, nil))

	notices := m.Service().Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, "s1", notices[0].SaleID)
	assert.Equal(t, "16.00", notices[0].Total)
	assert.Equal(t, 1, m.Health(context.Background()).Details["notices"])
}

func TestOrderNumber(t *testing.T) {
	assert.Equal(t, "ORD-ABC", OrderNumber(&sale.Sale{ID: "abc"}))
	assert.Equal(t, "ORD-12345678", OrderNumber(&sale.Sale{ID: "1234-5678-9"}))
}
