package sales

import (
	"context"

	"github.com/example/storefront-demo/domain/catalog"
	"github.com/example/storefront-demo/domain/sale"
)

// CustomerLookup resolves customer references.
type CustomerLookup interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// ProductStore reads products and mutates their stock.
type ProductStore interface {
	// Get returns nil, nil when the product does not exist.
	Get(ctx context.Context, id string) (*catalog.Product, error)
	// AdjustStock adds delta to the product's stock and stamps its update
	// time. It fails with ErrInsufficientStock rather than go below zero.
	AdjustStock(ctx context.Context, id string, delta int) error
}

// SaleStore persists the sale aggregate. Reads return fully resolved sales.
type SaleStore interface {
	Find(ctx context.Context, id string) (*sale.Sale, error)
	List(ctx context.Context, offset, limit int) ([]sale.Sale, error)
	ListByCustomer(ctx context.Context, customerID string) ([]sale.Sale, error)
	Create(ctx context.Context, s *sale.Sale) error
	UpdateHeader(ctx context.Context, s *sale.Sale) error
	InsertDetails(ctx context.Context, details []sale.SaleDetail) error
	DeleteDetails(ctx context.Context, saleID string) error
	Delete(ctx context.Context, id string) error
}

// Stores bundles the collaborators bound to one connection or transaction.
type Stores struct {
	Customers CustomerLookup
	Products  ProductStore
	Sales     SaleStore
}

// UnitOfWork runs fn atomically: every write made through the provided
// stores commits together or not at all.
type UnitOfWork interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
	// Stores returns non-transactional stores for reads.
	Stores() Stores
}
