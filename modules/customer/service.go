package customer

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	domain "github.com/example/storefront-demo/domain/customer"
	"github.com/google/uuid"
)

// Service implements customer business rules.
type Service struct {
	repo *Repository
}

// NewService creates a new customer service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new active customer.
func (s *Service) Create(ctx context.Context, req CreateCustomerRequest) (*domain.Customer, error) {
	c := &domain.Customer{
		ID:       uuid.New().String(),
		IsActive: true,
	}
	applyFields(c, req.CustomerFields)
	if err := validateCustomer(c); err != nil {
		return nil, err
	}

	exists, err := s.repo.DocumentExists(ctx, c.DocumentNumber, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDocumentExists
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns a customer by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Customer, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidCustomer)
	}
	return s.repo.FindByID(ctx, id)
}

// List returns a page of customers.
func (s *Service) List(ctx context.Context, req ListCustomersRequest) (ListCustomersResponse, error) {
	page, pageSize := req.Page, req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	customers, err := s.repo.List(ctx, (page-1)*pageSize, pageSize, req.IncludeInactive)
	if err != nil {
		return ListCustomersResponse{}, err
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	return ListCustomersResponse{Customers: customers, Page: page, PageSize: pageSize}, nil
}

// Update replaces a customer's editable fields.
func (s *Service) Update(ctx context.Context, req UpdateCustomerRequest) (*domain.Customer, error) {
	c, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	applyFields(c, req.CustomerFields)
	c.IsActive = req.IsActive
	c.UpdatedAt = time.Now()
	if err := validateCustomer(c); err != nil {
		return nil, err
	}

	exists, err := s.repo.DocumentExists(ctx, c.DocumentNumber, c.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDocumentExists
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete deactivates a customer.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Deactivate(ctx, id)
}

func applyFields(c *domain.Customer, f CustomerFields) {
	c.FirstName = strings.TrimSpace(f.FirstName)
	c.LastName = strings.TrimSpace(f.LastName)
	c.DocumentNumber = strings.TrimSpace(f.DocumentNumber)
	c.DocumentType = f.DocumentType
	c.Email = strings.TrimSpace(f.Email)
	c.Phone = f.Phone
	c.Address = f.Address
	c.City = f.City
	c.CustomerType = f.CustomerType
}

func validateCustomer(c *domain.Customer) error {
	switch {
	case c.FirstName == "":
		return fmt.Errorf("%w: first name is required", ErrInvalidCustomer)
	case c.LastName == "":
		return fmt.Errorf("%w: last name is required", ErrInvalidCustomer)
	case c.DocumentNumber == "":
		return fmt.Errorf("%w: document number is required", ErrInvalidCustomer)
	case len(c.DocumentNumber) > 20:
		return fmt.Errorf("%w: document number cannot exceed 20 characters", ErrInvalidCustomer)
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return fmt.Errorf("%w: invalid email format", ErrInvalidCustomer)
		}
	}
	return nil
}
