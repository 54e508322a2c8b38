package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/example/storefront-demo/domain/catalog"
	"github.com/example/storefront-demo/domain/sale"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	moneyPlaces     = 2

	// maxLineQuantity bounds a single line so per-product sums cannot overflow.
	maxLineQuantity = 1_000_000
)

// Service runs the sale workflow. Every mutation happens inside one unit of
// work; validation failures leave stock and sales untouched.
type Service struct {
	uow UnitOfWork
	now func() time.Time
}

// NewService creates a new sale service.
func NewService(uow UnitOfWork) *Service {
	return &Service{uow: uow, now: time.Now}
}

// pricedLine is a validated line with its computed subtotal.
type pricedLine struct {
	LineItem
	SubTotal decimal.Decimal
}

// CreateSale validates the command, deducts stock and persists the sale.
// It returns the sale as read back from the store.
func (s *Service) CreateSale(ctx context.Context, cmd SaleCommand) (*sale.Sale, error) {
	if err := validateHeader(cmd); err != nil {
		return nil, err
	}
	lines, err := priceLines(cmd.Lines)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sl := &sale.Sale{
		ID:        uuid.New().String(),
		CreatedAt: now,
	}
	applyHeader(sl, cmd, now)
	setLines(sl, lines)

	var created *sale.Sale
	err = s.uow.RunInTransaction(ctx, func(ctx context.Context, st Stores) error {
		if err := requireCustomer(ctx, st.Customers, cmd.CustomerID); err != nil {
			return err
		}
		if err := deductStock(ctx, st.Products, lines); err != nil {
			return err
		}
		if err := st.Sales.Create(ctx, sl); err != nil {
			return err
		}
		var err error
		created, err = st.Sales.Find(ctx, sl.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateSale replaces the sale's lines and header. Stock held by the old
// lines is restored before the new lines are checked, all in one
// transaction. It returns the sale before and after the update.
func (s *Service) UpdateSale(ctx context.Context, id string, cmd SaleCommand) (updated, previous *sale.Sale, err error) {
	if id == "" {
		return nil, nil, ErrSaleNotFound
	}
	if err := validateHeader(cmd); err != nil {
		return nil, nil, err
	}
	lines, err := priceLines(cmd.Lines)
	if err != nil {
		return nil, nil, err
	}

	err = s.uow.RunInTransaction(ctx, func(ctx context.Context, st Stores) error {
		existing, err := st.Sales.Find(ctx, id)
		if err != nil {
			return err
		}
		if err := requireCustomer(ctx, st.Customers, cmd.CustomerID); err != nil {
			return err
		}

		if err := restoreStock(ctx, st.Products, existing.Details); err != nil {
			return err
		}
		if err := st.Sales.DeleteDetails(ctx, id); err != nil {
			return err
		}
		if err := deductStock(ctx, st.Products, lines); err != nil {
			return err
		}

		sl := *existing
		sl.Customer = nil
		applyHeader(&sl, cmd, s.now())
		setLines(&sl, lines)
		if err := st.Sales.UpdateHeader(ctx, &sl); err != nil {
			return err
		}
		if err := st.Sales.InsertDetails(ctx, sl.Details); err != nil {
			return err
		}

		previous = existing
		updated, err = st.Sales.Find(ctx, id)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return updated, previous, nil
}

// DeleteSale restores the stock of every line and removes the sale.
// It returns the removed sale.
func (s *Service) DeleteSale(ctx context.Context, id string) (*sale.Sale, error) {
	if id == "" {
		return nil, ErrSaleNotFound
	}

	var removed *sale.Sale
	err := s.uow.RunInTransaction(ctx, func(ctx context.Context, st Stores) error {
		existing, err := st.Sales.Find(ctx, id)
		if err != nil {
			return err
		}
		if err := restoreStock(ctx, st.Products, existing.Details); err != nil {
			return err
		}
		if err := st.Sales.DeleteDetails(ctx, id); err != nil {
			return err
		}
		if err := st.Sales.Delete(ctx, id); err != nil {
			return err
		}
		removed = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// GetSale returns one fully resolved sale.
func (s *Service) GetSale(ctx context.Context, id string) (*sale.Sale, error) {
	if id == "" {
		return nil, ErrSaleNotFound
	}
	return s.uow.Stores().Sales.Find(ctx, id)
}

// ListSales returns a page of sales, newest sale date first.
func (s *Service) ListSales(ctx context.Context, page, pageSize int) ([]sale.Sale, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return s.uow.Stores().Sales.List(ctx, (page-1)*pageSize, pageSize)
}

// ListSalesByCustomer returns every sale of a customer, newest first.
func (s *Service) ListSalesByCustomer(ctx context.Context, customerID string) ([]sale.Sale, error) {
	return s.uow.Stores().Sales.ListByCustomer(ctx, customerID)
}

func validateHeader(cmd SaleCommand) error {
	switch {
	case cmd.CustomerID == "":
		return fmt.Errorf("%w: customer id is required", ErrInvalidSale)
	case len(cmd.Lines) == 0:
		return fmt.Errorf("%w: at least one sale item is required", ErrInvalidSale)
	case cmd.Tax.IsNegative():
		return fmt.Errorf("%w: tax must be greater than or equal to 0", ErrInvalidSale)
	case cmd.Discount.IsNegative():
		return fmt.Errorf("%w: discount must be greater than or equal to 0", ErrInvalidSale)
	case len(cmd.Status) > 50:
		return fmt.Errorf("%w: status cannot exceed 50 characters", ErrInvalidSale)
	case len(cmd.PaymentMethod) > 50:
		return fmt.Errorf("%w: payment method cannot exceed 50 characters", ErrInvalidSale)
	case len(cmd.Notes) > 500:
		return fmt.Errorf("%w: notes cannot exceed 500 characters", ErrInvalidSale)
	}
	return nil
}

// priceLines validates every line and computes unitPrice*quantity-discount.
func priceLines(items []LineItem) ([]pricedLine, error) {
	lines := make([]pricedLine, 0, len(items))
	for i, item := range items {
		item.UnitPrice = item.UnitPrice.Round(moneyPlaces)
		item.Discount = item.Discount.Round(moneyPlaces)

		switch {
		case item.Quantity < 1:
			return nil, fmt.Errorf("%w: line %d: quantity must be at least 1", ErrInvalidLineItem, i+1)
		case item.Quantity > maxLineQuantity:
			return nil, fmt.Errorf("%w: line %d: quantity cannot exceed %d", ErrInvalidLineItem, i+1, maxLineQuantity)
		case !item.UnitPrice.IsPositive():
			return nil, fmt.Errorf("%w: line %d: unit price must be greater than 0", ErrInvalidLineItem, i+1)
		case item.Discount.IsNegative():
			return nil, fmt.Errorf("%w: line %d: discount must be greater than or equal to 0", ErrInvalidLineItem, i+1)
		}

		subtotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Sub(item.Discount)
		if subtotal.IsNegative() {
			return nil, fmt.Errorf("%w: line %d: discount exceeds line amount", ErrInvalidLineItem, i+1)
		}
		lines = append(lines, pricedLine{LineItem: item, SubTotal: subtotal})
	}
	return lines, nil
}

func applyHeader(sl *sale.Sale, cmd SaleCommand, now time.Time) {
	sl.CustomerID = cmd.CustomerID
	switch {
	case cmd.SaleDate != nil:
		sl.SaleDate = cmd.SaleDate.UTC()
	case sl.SaleDate.IsZero():
		sl.SaleDate = now.UTC()
	}
	switch {
	case cmd.Status != "":
		sl.Status = cmd.Status
	case sl.Status == "":
		sl.Status = sale.StatusCompleted
	}
	sl.Tax = cmd.Tax.Round(moneyPlaces)
	sl.Discount = cmd.Discount.Round(moneyPlaces)
	sl.PaymentMethod = cmd.PaymentMethod
	sl.Notes = cmd.Notes
	sl.UpdatedAt = now
}

// setLines replaces the sale's details and recomputes SubTotal and Total.
func setLines(sl *sale.Sale, lines []pricedLine) {
	subtotal := decimal.Zero
	sl.Details = make([]sale.SaleDetail, 0, len(lines))
	for i, l := range lines {
		sl.Details = append(sl.Details, sale.SaleDetail{
			ID:        uuid.New().String(),
			SaleID:    sl.ID,
			LineNo:    i + 1,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Discount:  l.Discount,
			SubTotal:  l.SubTotal,
		})
		subtotal = subtotal.Add(l.SubTotal)
	}
	sl.SubTotal = subtotal
	sl.Total = subtotal.Add(sl.Tax).Sub(sl.Discount)
}

func requireCustomer(ctx context.Context, customers CustomerLookup, id string) error {
	ok, err := customers.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrCustomerNotFound, id)
	}
	return nil
}

// deductStock resolves every referenced product, then checks the summed
// quantity per product against its current stock, then deducts. Lines that
// repeat a product are checked together, never one at a time.
func deductStock(ctx context.Context, products ProductStore, lines []pricedLine) error {
	order := make([]string, 0, len(lines))
	required := make(map[string]int, len(lines))
	for _, l := range lines {
		if _, seen := required[l.ProductID]; !seen {
			order = append(order, l.ProductID)
		}
		required[l.ProductID] += l.Quantity
	}

	resolved := make(map[string]*catalog.Product, len(order))
	for _, id := range order {
		p, err := products.Get(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
		resolved[id] = p
	}

	for _, id := range order {
		p := resolved[id]
		if p.Stock < required[id] {
			return fmt.Errorf("%w for product %q (%s): available %d, requested %d",
				ErrInsufficientStock, p.Name, p.ID, p.Stock, required[id])
		}
	}

	for _, id := range order {
		if err := products.AdjustStock(ctx, id, -required[id]); err != nil {
			return err
		}
	}
	return nil
}

// restoreStock gives back the quantity held by details.
func restoreStock(ctx context.Context, products ProductStore, details []sale.SaleDetail) error {
	order := make([]string, 0, len(details))
	held := make(map[string]int, len(details))
	for _, d := range details {
		if _, seen := held[d.ProductID]; !seen {
			order = append(order, d.ProductID)
		}
		held[d.ProductID] += d.Quantity
	}
	for _, id := range order {
		if err := products.AdjustStock(ctx, id, held[id]); err != nil {
			return err
		}
	}
	return nil
}
