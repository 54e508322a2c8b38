package receipt

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/example/storefront-demo/config"
	"github.com/example/storefront-demo/domain/sale"
	"github.com/example/storefront-demo/modules/sales"
)

var (
	// ErrSaleNotFound is returned when the receipt's sale does not exist.
	ErrSaleNotFound = errors.New("sale not found")
	// ErrNoCustomerEmail is returned when the customer has no email on file.
	ErrNoCustomerEmail = errors.New("customer has no email address")
)

// SaleSource loads fully resolved sales.
type SaleSource interface {
	GetSale(ctx context.Context, id string) (*sale.Sale, error)
}

// Notice records a sale announced on the event bus.
type Notice struct {
	SaleID     string    `json:"sale_id"`
	CustomerID string    `json:"customer_id"`
	Total      string    `json:"total"`
	ReceivedAt time.Time `json:"received_at"`
}

// Service renders receipts and hands them to a Mailer.
type Service struct {
	cfg    config.ReceiptConfig
	mailer Mailer

	mu      sync.RWMutex
	sales   SaleSource
	notices []Notice
	sent    int
}

// NewService creates a receipt service. The sale source may be set later
// with SetSaleSource.
func NewService(cfg config.ReceiptConfig, mailer Mailer, src SaleSource) *Service {
	if mailer == nil {
		mailer = LogMailer{}
	}
	return &Service{cfg: cfg, mailer: mailer, sales: src}
}

// SetSaleSource replaces the sale source.
func (s *Service) SetSaleSource(src SaleSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = src
}

// Send renders the receipt of saleID and mails it to the customer.
func (s *Service) Send(ctx context.Context, saleID string) (*Message, error) {
	s.mu.RLock()
	src := s.sales
	s.mu.RUnlock()
	if src == nil {
		return nil, errors.New("receipt service has no sale source")
	}

	sl, err := src.GetSale(ctx, saleID)
	if err != nil {
		if errors.Is(err, sales.ErrSaleNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSaleNotFound, saleID)
		}
		return nil, fmt.Errorf("failed to load sale: %w", err)
	}
	if sl.Customer == nil || sl.Customer.Email == "" {
		return nil, fmt.Errorf("%w: sale %s", ErrNoCustomerEmail, saleID)
	}

	html, err := Render(sl, s.cfg.SenderName)
	if err != nil {
		return nil, err
	}

	msg := Message{
		From:     s.cfg.Sender,
		FromName: s.cfg.SenderName,
		To:       sl.Customer.Email,
		ToName:   sl.Customer.FullName(),
		Subject:  fmt.Sprintf("Your receipt for order %s", OrderNumber(sl)),
		HTML:     html,
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to send receipt: %w", err)
	}

	s.mu.Lock()
	s.sent++
	s.mu.Unlock()
	return &msg, nil
}

// Record stores a notice for a newly created sale.
func (s *Service) Record(n Notice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, n)
}

// Notices returns a copy of the recorded notices.
func (s *Service) Notices() []Notice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Notice, len(s.notices))
	copy(out, s.notices)
	return out
}

// Sent returns how many receipts were delivered.
func (s *Service) Sent() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sent
}
