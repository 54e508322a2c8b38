package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/example/storefront-demo/config"
	"github.com/example/storefront-demo/domain/catalog"
	"github.com/example/storefront-demo/domain/customer"
	"github.com/example/storefront-demo/domain/sale"
	"github.com/example/storefront-demo/modules/cache"
	catalogmod "github.com/example/storefront-demo/modules/catalog"
	"github.com/example/storefront-demo/modules/receipt"
	"github.com/example/storefront-demo/modules/sales"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSalesPort struct {
	sales.SalesPort
	created  []sales.SaleCommand
	updated  map[string]sales.SaleCommand
	page     [2]int
	err      error
	stored   map[string]*sale.Sale
	customer map[string][]sale.Sale
}

func newMockSales() *mockSalesPort {
	return &mockSalesPort{
		updated:  make(map[string]sales.SaleCommand),
		stored:   make(map[string]*sale.Sale),
		customer: make(map[string][]sale.Sale),
	}
}

func (m *mockSalesPort) CreateSale(_ context.Context, cmd sales.SaleCommand) (*sale.Sale, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = append(m.created, cmd)
	return sampleSale(), nil
}

func (m *mockSalesPort) GetSale(_ context.Context, id string) (*sale.Sale, error) {
	if s, ok := m.stored[id]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %s", sales.ErrSaleNotFound, id)
}

func (m *mockSalesPort) ListSales(_ context.Context, page, pageSize int) ([]sale.Sale, error) {
	m.page = [2]int{page, pageSize}
	return []sale.Sale{*sampleSale()}, nil
}

func (m *mockSalesPort) ListSalesByCustomer(_ context.Context, customerID string) ([]sale.Sale, error) {
	return m.customer[customerID], nil
}

func (m *mockSalesPort) UpdateSale(_ context.Context, id string, cmd sales.SaleCommand) error {
	if m.err != nil {
		return m.err
	}
	m.updated[id] = cmd
	return nil
}

func (m *mockSalesPort) DeleteSale(_ context.Context, id string) error {
	return m.err
}

type mockCatalogPort struct {
	catalogmod.CatalogPort
}

func (mockCatalogPort) GetProduct(_ context.Context, id string) (*catalog.Product, error) {
	if id != "A" {
		return nil, catalogmod.ErrProductNotFound
	}
	return &catalog.Product{ID: "A", Name: "Coffee", SKU: "COF", Price: decimal.RequireFromString("5"), Stock: 7, IsActive: true}, nil
}

func (mockCatalogPort) CacheStats(_ context.Context) (*cache.StatsSnapshot, error) {
	return &cache.StatsSnapshot{Enabled: true, Hits: 3, Misses: 1}, nil
}

type mockReceiptPort struct{ err error }

func (m mockReceiptPort) SendReceipt(_ context.Context, saleID string) (*receipt.SendReceiptResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &receipt.SendReceiptResponse{SaleID: saleID, To: "ada@example.com"}, nil
}

type recordingReceiptPort struct{ ids []string }

func (r *recordingReceiptPort) SendReceipt(_ context.Context, saleID string) (*receipt.SendReceiptResponse, error) {
	r.ids = append(r.ids, saleID)
	return &receipt.SendReceiptResponse{SaleID: saleID}, nil
}

type stubReporter struct {
	name    string
	healthy bool
}

func (s stubReporter) Name() string { return s.name }

func (s stubReporter) Health(context.Context) mono.HealthStatus {
	return mono.HealthStatus{Healthy: s.healthy}
}

func sampleSale() *sale.Sale {
	return &sale.Sale{
		ID:         "sale-1",
		CustomerID: "cust-1",
		Customer:   &customer.Customer{ID: "cust-1", FirstName: "Ada", LastName: "Lovelace", Email: "User@Example.com"},
		SaleDate:   time.Date(2024, 5, 4, 10, 0, 0, 0, time.UTC),
		SubTotal:   decimal.RequireFromString("15"),
		Tax:        decimal.RequireFromString("1"),
		Discount:   decimal.Zero,
		Total:      decimal.RequireFromString("16"),
		Status:     sale.StatusCompleted,
		Details: []sale.SaleDetail{{
			ID:        "d1",
			LineNo:    1,
			ProductID: "A",
			Product:   &catalog.Product{ID: "A", Name: "Coffee", SKU: "COF"},
			Quantity:  3,
			UnitPrice: decimal.RequireFromString("5"),
			Discount:  decimal.Zero,
			SubTotal:  decimal.RequireFromString("15"),
		}},
	}
}

func newTestApp(s *mockSalesPort, reporters ...HealthReporter) *fiber.App {
	h := &Handlers{
		auth:      roleTokens(),
		catalog:   mockCatalogPort{},
		sales:     s,
		receipts:  mockReceiptPort{},
		reporters: reporters,
	}
	return NewRouter(h, config.HTTPConfig{AuthRateLimit: 0})
}

func do(t *testing.T, app *fiber.App, method, path, token, body string) (*http.Response, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, string(b)
}

const saleBody = `{"customer_id":"cust-1","tax":"1.00","items":[{"product_id":"A","quantity":3,"unit_price":5}]}`

func TestCreateSale(t *testing.T) {
	s := newMockSales()
	app := newTestApp(s)

	resp, _ := do(t, app, http.MethodPost, "/api/v1/sales", "", saleBody)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := do(t, app, http.MethodPost, "/api/v1/sales", "customer-token", saleBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	assert.Equal(t, "/api/v1/sales/sale-1", resp.Header.Get("Location"))

	var got SaleResponse
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "15.00", got.SubTotal)
	assert.Equal(t, "16.00", got.Total)
	assert.Equal(t, "Ada Lovelace", got.CustomerName)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Coffee", got.Items[0].ProductName)
	assert.Equal(t, "5.00", got.Items[0].UnitPrice)

	require.Len(t, s.created, 1)
	cmd := s.created[0]
	assert.Equal(t, "cust-1", cmd.CustomerID)
	require.Len(t, cmd.Lines, 1)
	assert.Equal(t, 3, cmd.Lines[0].Quantity)
	assert.True(t, cmd.Lines[0].UnitPrice.Equal(decimal.NewFromInt(5)))
	assert.True(t, cmd.Tax.Equal(decimal.NewFromInt(1)))
}

func TestCreateSaleErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"insufficient stock", fmt.Errorf("%w for product %q", sales.ErrInsufficientStock, "Coffee"), http.StatusBadRequest},
		{"unknown customer", sales.ErrCustomerNotFound, http.StatusBadRequest},
		{"unknown product", sales.ErrProductNotFound, http.StatusBadRequest},
		{"invalid line", sales.ErrInvalidLineItem, http.StatusBadRequest},
		{"invalid sale", sales.ErrInvalidSale, http.StatusBadRequest},
		{"conflict", sales.ErrConcurrencyConflict, http.StatusConflict},
		{"unexpected", fmt.Errorf("disk I/O error"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newMockSales()
			s.err = tt.err
			resp, body := do(t, newTestApp(s), http.MethodPost, "/api/v1/sales", "customer-token", saleBody)
			assert.Equal(t, tt.status, resp.StatusCode, body)
			if tt.status == http.StatusInternalServerError {
				assert.NotContains(t, body, "disk")
			}
		})
	}
}

func TestCreateSaleMalformedBody(t *testing.T) {
	resp, _ := do(t, newTestApp(newMockSales()), http.MethodPost, "/api/v1/sales", "customer-token", `{"items":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetSale(t *testing.T) {
	s := newMockSales()
	s.stored["sale-1"] = sampleSale()
	app := newTestApp(s)

	resp, body := do(t, app, http.MethodGet, "/api/v1/sales/sale-1", "customer-token", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"total":"16.00"`)

	resp, _ = do(t, app, http.MethodGet, "/api/v1/sales/missing", "customer-token", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetSaleScopedToOwner(t *testing.T) {
	s := newMockSales()
	s.stored["sale-1"] = sampleSale()
	app := newTestApp(s)

	resp, body := do(t, app, http.MethodGet, "/api/v1/sales/sale-1", "other-customer-token", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotContains(t, body, "Lovelace")

	resp, _ = do(t, app, http.MethodGet, "/api/v1/sales/sale-1", "admin-token", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListSalesPaging(t *testing.T) {
	s := newMockSales()
	app := newTestApp(s)

	resp, _ := do(t, app, http.MethodGet, "/api/v1/sales", "customer-token", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := do(t, app, http.MethodGet, "/api/v1/sales", "admin-token", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, [2]int{1, 10}, s.page)
	assert.Contains(t, body, `"page_size":10`)

	resp, _ = do(t, app, http.MethodGet, "/api/v1/sales?page=3&pageSize=5", "admin-token", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, [2]int{3, 5}, s.page)

	resp, _ = do(t, app, http.MethodGet, "/api/v1/sales?page=0", "admin-token", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListCustomerSales(t *testing.T) {
	s := newMockSales()
	s.customer["cust-1"] = []sale.Sale{*sampleSale()}
	app := newTestApp(s)

	resp, body := do(t, app, http.MethodGet, "/api/v1/sales/customer/cust-1", "customer-token", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got []SaleResponse
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "sale-1", got[0].ID)

	resp, body = do(t, app, http.MethodGet, "/api/v1/sales/customer/cust-1", "other-customer-token", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got = nil
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Empty(t, got)
}

func TestUpdateAndDeleteSaleRequireAdmin(t *testing.T) {
	s := newMockSales()
	app := newTestApp(s)

	resp, _ := do(t, app, http.MethodPut, "/api/v1/sales/sale-1", "customer-token", saleBody)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Empty(t, s.updated)

	resp, _ = do(t, app, http.MethodPut, "/api/v1/sales/sale-1", "admin-token", saleBody)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Contains(t, s.updated, "sale-1")

	resp, _ = do(t, app, http.MethodDelete, "/api/v1/sales/sale-1", "customer-token", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = do(t, app, http.MethodDelete, "/api/v1/sales/sale-1", "admin-token", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	s.err = sales.ErrSaleNotFound
	resp, _ = do(t, app, http.MethodDelete, "/api/v1/sales/sale-1", "admin-token", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductRoutes(t *testing.T) {
	app := newTestApp(newMockSales())

	resp, body := do(t, app, http.MethodGet, "/api/v1/products/A", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"price":"5.00"`)

	resp, _ = do(t, app, http.MethodGet, "/api/v1/products/B", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPost, "/api/v1/products", "customer-token", `{"name":"x"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCacheStatsRoute(t *testing.T) {
	app := newTestApp(newMockSales())

	resp, body := do(t, app, http.MethodGet, "/api/v1/cache/stats", "admin-token", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"hits":3`)
}

func TestSendReceiptRoute(t *testing.T) {
	s := newMockSales()
	s.stored["sale-1"] = sampleSale()
	h := &Handlers{auth: roleTokens(), sales: s, receipts: mockReceiptPort{err: receipt.ErrNoCustomerEmail}}
	app := NewRouter(h, config.HTTPConfig{})

	resp, _ := do(t, app, http.MethodPost, "/api/v1/receipts/sale-1", "customer-token", "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	h.receipts = mockReceiptPort{}
	resp, body := do(t, app, http.MethodPost, "/api/v1/receipts/sale-1", "customer-token", "")
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Contains(t, body, "ada@example.com")

	resp, _ = do(t, app, http.MethodPost, "/api/v1/receipts/sale-1", "admin-token", "")
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
}

func TestSendReceiptScopedToOwner(t *testing.T) {
	s := newMockSales()
	s.stored["sale-1"] = sampleSale()
	sent := &recordingReceiptPort{}
	h := &Handlers{auth: roleTokens(), sales: s, receipts: sent}
	app := NewRouter(h, config.HTTPConfig{})

	resp, _ := do(t, app, http.MethodPost, "/api/v1/receipts/sale-1", "other-customer-token", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPost, "/api/v1/receipts/missing", "customer-token", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Empty(t, sent.ids)

	resp, _ = do(t, app, http.MethodPost, "/api/v1/receipts/sale-1", "customer-token", "")
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, []string{"sale-1"}, sent.ids)
}

func TestHealth(t *testing.T) {
	resp, body := do(t, newTestApp(newMockSales(), stubReporter{"sales", true}), http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"status":"healthy"`)

	resp, body = do(t, newTestApp(newMockSales(), stubReporter{"sales", true}, stubReporter{"cache", false}), http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, body, `"cache"`)
}
