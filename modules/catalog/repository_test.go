package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/example/storefront-demo/database"
	domain "github.com/example/storefront-demo/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// setupTestDB creates a migrated in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenMemory()
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newProduct(name, sku string, active bool) *domain.Product {
	return &domain.Product{
		ID:       uuid.New().String(),
		Name:     name,
		SKU:      sku,
		Price:    decimal.RequireFromString("9.99"),
		Stock:    10,
		IsActive: active,
	}
}

func TestRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	p := newProduct("Hammer", "HAM-1", true)
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	var found domain.Product
	if err := db.First(&found, "id = ?", p.ID).Error; err != nil {
		t.Fatalf("failed to find created product: %v", err)
	}
	if found.Name != p.Name {
		t.Errorf("expected name %q, got %q", p.Name, found.Name)
	}
	if !found.Price.Equal(p.Price) {
		t.Errorf("expected price %s, got %s", p.Price, found.Price)
	}

	t.Run("duplicate sku", func(t *testing.T) {
		err := repo.Create(ctx, newProduct("Other", "HAM-1", false))
		if !errors.Is(err, ErrSKUExists) {
			t.Errorf("expected ErrSKUExists, got %v", err)
		}
	})
}

func TestRepository_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	p := newProduct("Saw", "SAW-1", false)
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}

	t.Run("inactive product still resolves", func(t *testing.T) {
		found, err := repo.FindByID(ctx, p.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if found.IsActive {
			t.Error("expected inactive product")
		}
	})

	t.Run("non-existent product", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "missing")
		if err != ErrProductNotFound {
			t.Errorf("expected ErrProductNotFound, got %v", err)
		}
	})
}

func TestRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for _, p := range []*domain.Product{
		newProduct("Chisel", "C-1", true),
		newProduct("Anvil", "A-1", true),
		newProduct("Brush", "B-1", false),
	} {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("failed to create product: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter ListFilter
		want   []string
	}{
		{"active only by name", ListFilter{}, []string{"Anvil", "Chisel"}},
		{"include inactive", ListFilter{IncludeInactive: true}, []string{"Anvil", "Brush", "Chisel"}},
		{"second page", ListFilter{Offset: 1, Limit: 1}, []string{"Chisel"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := repo.List(ctx, tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(products) != len(tt.want) {
				t.Fatalf("expected %d products, got %d", len(tt.want), len(products))
			}
			for i, name := range tt.want {
				if products[i].Name != name {
					t.Errorf("products[%d] = %q, want %q", i, products[i].Name, name)
				}
			}
		})
	}
}

func TestRepository_UpdateAndDeactivate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	p := newProduct("Drill", "D-1", true)
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	p.Stock = 0
	p.Name = "Cordless Drill"
	if err := repo.Update(ctx, p); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, _ := repo.FindByID(ctx, p.ID)
	if found.Stock != 0 || found.Name != "Cordless Drill" {
		t.Errorf("Update() did not persist zero stock/new name: %+v", found)
	}

	if err := repo.Deactivate(ctx, p.ID); err != nil {
		t.Fatalf("Deactivate() error = %v", err)
	}
	found, _ = repo.FindByID(ctx, p.ID)
	if found.IsActive {
		t.Error("product still active after Deactivate()")
	}

	if err := repo.Deactivate(ctx, "missing"); err != ErrProductNotFound {
		t.Errorf("Deactivate(missing) = %v, want ErrProductNotFound", err)
	}
	if err := repo.Update(ctx, newProduct("Ghost", "G-1", true)); err != ErrProductNotFound {
		t.Errorf("Update(missing) = %v, want ErrProductNotFound", err)
	}
}
