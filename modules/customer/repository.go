package customer

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/example/storefront-demo/domain/customer"
	"gorm.io/gorm"
)

var (
	// ErrCustomerNotFound is returned when a customer is not found.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrDocumentExists is returned when the document number is already registered.
	ErrDocumentExists = errors.New("a customer with this document number already exists")
	// ErrInvalidCustomer is returned when customer fields fail validation.
	ErrInvalidCustomer = errors.New("invalid customer")
)

// Repository handles customer persistence using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new customer repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create creates a new customer in the database.
func (r *Repository) Create(ctx context.Context, c *domain.Customer) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDocumentExists
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// FindByID finds a customer by ID.
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return &c, nil
}

// List returns customers ordered by last name then first name.
func (r *Repository) List(ctx context.Context, offset, limit int, includeInactive bool) ([]domain.Customer, error) {
	query := r.db.WithContext(ctx).Order("last_name ASC").Order("first_name ASC")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}

	var customers []domain.Customer
	if err := query.Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// DocumentExists reports whether a customer other than excludeID holds the document number.
func (r *Repository) DocumentExists(ctx context.Context, documentNumber, excludeID string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&domain.Customer{}).Where("document_number = ?", documentNumber)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check document number: %w", err)
	}
	return count > 0, nil
}

// Update writes every editable column of the customer, including zero values.
func (r *Repository) Update(ctx context.Context, c *domain.Customer) error {
	result := r.db.WithContext(ctx).Model(&domain.Customer{}).
		Where("id = ?", c.ID).
		Select("first_name", "last_name", "document_number", "document_type", "email",
			"phone", "address", "city", "customer_type", "is_active", "updated_at").
		Updates(c)
	if err := result.Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDocumentExists
		}
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// Deactivate soft-deletes a customer.
func (r *Repository) Deactivate(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&domain.Customer{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_active": false, "updated_at": time.Now()})
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to deactivate customer: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}
