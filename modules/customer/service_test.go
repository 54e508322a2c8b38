package customer

import (
	"context"
	"testing"

	"github.com/example/storefront-demo/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewService(NewRepository(db))
}

func fields(first, last, doc string) CustomerFields {
	return CustomerFields{
		FirstName:      first,
		LastName:       last,
		DocumentNumber: doc,
		Email:          first + "@example.com",
	}
}

func TestService_Create(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, CreateCustomerRequest{fields("ana", "Diaz", "100")})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.True(t, c.IsActive)
	assert.Equal(t, "ana Diaz", c.FullName())

	_, err = svc.Create(ctx, CreateCustomerRequest{fields("bob", "Diaz", "100")})
	assert.ErrorIs(t, err, ErrDocumentExists)
}

func TestService_CreateValidation(t *testing.T) {
	svc := setupService(t)

	tests := []struct {
		name string
		f    CustomerFields
		msg  string
	}{
		{"missing first name", fields("", "Diaz", "1"), "first name is required"},
		{"missing last name", fields("ana", "", "1"), "last name is required"},
		{"missing document", fields("ana", "Diaz", ""), "document number is required"},
		{"bad email", CustomerFields{FirstName: "a", LastName: "b", DocumentNumber: "2", Email: "not-an-email"}, "invalid email format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), CreateCustomerRequest{tt.f})
			require.ErrorIs(t, err, ErrInvalidCustomer)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestService_ListOrderAndSoftDelete(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	for _, f := range []CustomerFields{
		fields("zoe", "Alvarez", "1"),
		fields("ana", "Alvarez", "2"),
		fields("carl", "Bauer", "3"),
	} {
		_, err := svc.Create(ctx, CreateCustomerRequest{f})
		require.NoError(t, err)
	}

	resp, err := svc.List(ctx, ListCustomersRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Customers, 3)
	assert.Equal(t, "ana", resp.Customers[0].FirstName)
	assert.Equal(t, "zoe", resp.Customers[1].FirstName)
	assert.Equal(t, "carl", resp.Customers[2].FirstName)

	require.NoError(t, svc.Delete(ctx, resp.Customers[0].ID))

	resp, err = svc.List(ctx, ListCustomersRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Customers, 2)

	resp, err = svc.List(ctx, ListCustomersRequest{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, resp.Customers, 3)

	assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrCustomerNotFound)
}

func TestService_Update(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateCustomerRequest{fields("ana", "Diaz", "10")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateCustomerRequest{fields("bob", "Diaz", "11")})
	require.NoError(t, err)

	f := fields("Ana", "Diaz Ruiz", "10")
	f.City = "Bogota"
	updated, err := svc.Update(ctx, UpdateCustomerRequest{ID: a.ID, CustomerFields: f, IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "Ana Diaz Ruiz", updated.FullName())

	got, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bogota", got.City)

	_, err = svc.Update(ctx, UpdateCustomerRequest{ID: a.ID, CustomerFields: fields("Ana", "Diaz", "11"), IsActive: true})
	assert.ErrorIs(t, err, ErrDocumentExists)

	_, err = svc.Update(ctx, UpdateCustomerRequest{ID: "missing", CustomerFields: f})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
