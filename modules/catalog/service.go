package catalog

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	domain "github.com/example/storefront-demo/domain/catalog"
	"github.com/example/storefront-demo/modules/cache"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Service implements catalog operations with a cache-aside read path.
type Service struct {
	repo    *Repository
	cache   cache.CacheService
	sfGroup singleflight.Group
}

// NewService creates a new catalog service. A nil cache disables caching.
func NewService(repo *Repository, c cache.CacheService) *Service {
	if c == nil {
		c = cache.Noop{}
	}
	return &Service{repo: repo, cache: c}
}

func productKey(id string) string {
	return "product:" + id
}

func listKey(filter ListFilter) string {
	return fmt.Sprintf("products:list:%d:%d:%t", filter.Offset, filter.Limit, filter.IncludeInactive)
}

// Create validates and stores a new active product.
func (s *Service) Create(ctx context.Context, req CreateProductRequest) (*domain.Product, error) {
	p := &domain.Product{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		SKU:         strings.TrimSpace(req.SKU),
		Price:       req.Price.Round(2),
		Stock:       req.Stock,
		Unit:        req.Unit,
		Category:    req.Category,
		IsActive:    true,
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	exists, err := s.repo.SKUExists(ctx, p.SKU, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSKUExists
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.invalidateLists(ctx)
	log.Printf("[catalog] Created product %s (sku=%s)", p.ID, p.SKU)
	return p, nil
}

// Get returns a product by id through the cache. Concurrent misses for the
// same id share one database read.
func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidProduct)
	}

	key := productKey(id)
	var cached domain.Product
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("[catalog] Cache error for %s: %v", key, err)
	}
	if found {
		return &cached, nil
	}

	val, err, _ := s.sfGroup.Do(key, func() (any, error) {
		return s.repo.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	p := val.(*domain.Product)

	if err := s.cache.Set(ctx, key, p); err != nil {
		log.Printf("[catalog] Warning: failed to cache %s: %v", key, err)
	}
	return p, nil
}

// List returns one page of products ordered by name.
func (s *Service) List(ctx context.Context, req ListProductsRequest) (ListProductsResponse, error) {
	page, pageSize := normalizePage(req.Page, req.PageSize)
	filter := ListFilter{
		Offset:          (page - 1) * pageSize,
		Limit:           pageSize,
		IncludeInactive: req.IncludeInactive,
	}

	key := listKey(filter)
	var products []domain.Product
	found, err := s.cache.Get(ctx, key, &products)
	if err != nil {
		log.Printf("[catalog] Cache error for %s: %v", key, err)
	}

	if !found {
		val, err, _ := s.sfGroup.Do(key, func() (any, error) {
			return s.repo.List(ctx, filter)
		})
		if err != nil {
			return ListProductsResponse{}, err
		}
		products = val.([]domain.Product)
		if err := s.cache.Set(ctx, key, products); err != nil {
			log.Printf("[catalog] Warning: failed to cache %s: %v", key, err)
		}
	}

	if products == nil {
		products = []domain.Product{}
	}
	return ListProductsResponse{Products: products, Page: page, PageSize: pageSize}, nil
}

// Update replaces the editable fields of a product.
func (s *Service) Update(ctx context.Context, req UpdateProductRequest) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	p.Name = strings.TrimSpace(req.Name)
	p.Description = req.Description
	p.SKU = strings.TrimSpace(req.SKU)
	p.Price = req.Price.Round(2)
	p.Stock = req.Stock
	p.Unit = req.Unit
	p.Category = req.Category
	p.IsActive = req.IsActive
	p.UpdatedAt = time.Now()
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	exists, err := s.repo.SKUExists(ctx, p.SKU, p.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSKUExists
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.Invalidate(ctx, p.ID)
	return p, nil
}

// Delete deactivates a product. The row stays so sale details keep resolving.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.Invalidate(ctx, id)
	log.Printf("[catalog] Deactivated product %s", id)
	return nil
}

// Invalidate drops the cached entries of the given products and every cached
// list page. Cache failures are logged, never returned.
func (s *Service) Invalidate(ctx context.Context, ids ...string) {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, productKey(id))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Printf("[catalog] Warning: failed to invalidate products: %v", err)
	}
	s.invalidateLists(ctx)
}

func (s *Service) invalidateLists(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, "products:list:*"); err != nil {
		log.Printf("[catalog] Warning: failed to invalidate product lists: %v", err)
	}
}

// CacheStats exposes the underlying cache counters.
func (s *Service) CacheStats() cache.StatsSnapshot {
	return s.cache.Stats()
}

func validateProduct(p *domain.Product) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case len(p.Name) > 200:
		return fmt.Errorf("%w: name cannot exceed 200 characters", ErrInvalidProduct)
	case p.SKU == "":
		return fmt.Errorf("%w: sku is required", ErrInvalidProduct)
	case len(p.SKU) > 50:
		return fmt.Errorf("%w: sku cannot exceed 50 characters", ErrInvalidProduct)
	case !p.Price.IsPositive():
		return fmt.Errorf("%w: price must be greater than 0", ErrInvalidProduct)
	case p.Stock < 0:
		return fmt.Errorf("%w: stock must be non-negative", ErrInvalidProduct)
	}
	return nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
