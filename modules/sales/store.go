package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/storefront-demo/domain/catalog"
	"github.com/example/storefront-demo/domain/customer"
	"github.com/example/storefront-demo/domain/sale"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUnitOfWork implements UnitOfWork on a gorm handle.
type GormUnitOfWork struct {
	db *gorm.DB
}

var _ UnitOfWork = (*GormUnitOfWork)(nil)

// NewGormUnitOfWork creates a unit of work over db.
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Stores returns stores bound to the root handle.
func (u *GormUnitOfWork) Stores() Stores {
	return newGormStores(u.db)
}

// RunInTransaction runs fn inside a database transaction. The stores handed
// to fn are bound to that transaction and must be the only ones used.
func (u *GormUnitOfWork) RunInTransaction(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, newGormStores(tx))
	})
	return translateStoreError(err)
}

// translateStoreError maps SQLite lock contention to ErrConcurrencyConflict.
func translateStoreError(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked:
			return fmt.Errorf("%w: %v", ErrConcurrencyConflict, err)
		}
	}
	return err
}

func newGormStores(db *gorm.DB) Stores {
	return Stores{
		Customers: &gormCustomerLookup{db: db},
		Products:  &gormProductStore{db: db},
		Sales:     &gormSaleStore{db: db},
	}
}

type gormCustomerLookup struct {
	db *gorm.DB
}

func (l *gormCustomerLookup) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := l.db.WithContext(ctx).Model(&customer.Customer{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to look up customer: %w", err)
	}
	return count > 0, nil
}

type gormProductStore struct {
	db *gorm.DB
}

func (s *gormProductStore) Get(ctx context.Context, id string) (*catalog.Product, error) {
	var p catalog.Product
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return &p, nil
}

// AdjustStock applies delta with a guarded UPDATE so stock never goes
// negative even if a caller skipped the read-side check.
func (s *gormProductStore) AdjustStock(ctx context.Context, id string, delta int) error {
	result := s.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Updates(map[string]any{
			"stock":      gorm.Expr("stock + ?", delta),
			"updated_at": time.Now(),
		})
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to adjust stock: %w", err)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: product %s cannot absorb %d", ErrInsufficientStock, id, delta)
	}
	return nil
}

type gormSaleStore struct {
	db *gorm.DB
}

// resolved eagerly loads the customer and the ordered lines with their products.
func (s *gormSaleStore) resolved(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Customer").
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("sale_details.line_no ASC")
		}).
		Preload("Details.Product")
}

func (s *gormSaleStore) Find(ctx context.Context, id string) (*sale.Sale, error) {
	var out sale.Sale
	if err := s.resolved(ctx).First(&out, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to find sale: %w", err)
	}
	return &out, nil
}

func (s *gormSaleStore) List(ctx context.Context, offset, limit int) ([]sale.Sale, error) {
	var out []sale.Sale
	query := s.resolved(ctx).Order("sale_date DESC").Order("created_at DESC")
	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}
	if err := query.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return out, nil
}

func (s *gormSaleStore) ListByCustomer(ctx context.Context, customerID string) ([]sale.Sale, error) {
	var out []sale.Sale
	if err := s.resolved(ctx).
		Where("customer_id = ?", customerID).
		Order("sale_date DESC").Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list customer sales: %w", err)
	}
	return out, nil
}

func (s *gormSaleStore) Create(ctx context.Context, sl *sale.Sale) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(sl).Error; err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}
	return s.InsertDetails(ctx, sl.Details)
}

func (s *gormSaleStore) UpdateHeader(ctx context.Context, sl *sale.Sale) error {
	result := s.db.WithContext(ctx).Model(&sale.Sale{}).
		Where("id = ?", sl.ID).
		Updates(map[string]any{
			"customer_id":    sl.CustomerID,
			"sale_date":      sl.SaleDate,
			"sub_total":      sl.SubTotal,
			"tax":            sl.Tax,
			"discount":       sl.Discount,
			"total":          sl.Total,
			"status":         sl.Status,
			"payment_method": sl.PaymentMethod,
			"notes":          sl.Notes,
			"updated_at":     sl.UpdatedAt,
		})
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update sale: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrSaleNotFound
	}
	return nil
}

func (s *gormSaleStore) InsertDetails(ctx context.Context, details []sale.SaleDetail) error {
	if len(details) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&details).Error; err != nil {
		return fmt.Errorf("failed to create sale details: %w", err)
	}
	return nil
}

func (s *gormSaleStore) DeleteDetails(ctx context.Context, saleID string) error {
	if err := s.db.WithContext(ctx).Where("sale_id = ?", saleID).Delete(&sale.SaleDetail{}).Error; err != nil {
		return fmt.Errorf("failed to delete sale details: %w", err)
	}
	return nil
}

func (s *gormSaleStore) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&sale.Sale{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrSaleNotFound
	}
	return nil
}
