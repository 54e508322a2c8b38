// Package api serves the storefront over HTTP with fiber.
package api

import (
	"context"
	"fmt"
	"log"

	"github.com/example/storefront-demo/config"
	domain "github.com/example/storefront-demo/domain/user"
	"github.com/example/storefront-demo/modules/auth"
	"github.com/example/storefront-demo/modules/catalog"
	"github.com/example/storefront-demo/modules/customer"
	"github.com/example/storefront-demo/modules/receipt"
	"github.com/example/storefront-demo/modules/sales"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// APIModule is the HTTP API module.
type APIModule struct {
	cfg      config.HTTPConfig
	app      *fiber.App
	handlers *Handlers
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule. The reporters are exposed on /health.
func NewModule(cfg config.HTTPConfig, reporters ...HealthReporter) *APIModule {
	return &APIModule{
		cfg:      cfg,
		handlers: &Handlers{reporters: reporters},
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "catalog", "customer", "sales", "receipt"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.handlers.auth = auth.NewAuthAdapter(container)
	case "catalog":
		m.handlers.catalog = catalog.NewAdapter(container)
	case "customer":
		m.handlers.customers = customer.NewAdapter(container)
	case "sales":
		m.handlers.sales = sales.NewAdapter(container)
	case "receipt":
		m.handlers.receipts = receipt.NewAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	h := m.handlers
	switch {
	case h.auth == nil:
		return fmt.Errorf("auth dependency not set")
	case h.catalog == nil:
		return fmt.Errorf("catalog dependency not set")
	case h.customers == nil:
		return fmt.Errorf("customer dependency not set")
	case h.sales == nil:
		return fmt.Errorf("sales dependency not set")
	case h.receipts == nil:
		return fmt.Errorf("receipt dependency not set")
	}

	m.app = NewRouter(h, m.cfg)

	addr := fmt.Sprintf(":%d", m.cfg.Port)
	go func() {
		if err := m.app.Listen(addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on %s", addr)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.cfg.Port,
		},
	}
}

// NewRouter builds the fiber app with every route mounted.
func NewRouter(h *Handlers, cfg config.HTTPConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New())

	app.Get("/health", h.Health)

	v1 := app.Group("/api/v1")

	authRoutes := v1.Group("/auth")
	if cfg.AuthRateLimit > 0 {
		authRoutes.Use(AuthRateLimit(cfg.AuthRateLimit))
	}
	authRoutes.Post("/register", h.Register)
	authRoutes.Post("/login", h.Login)
	authRoutes.Post("/refresh", h.Refresh)

	v1.Get("/products", h.ListProducts)
	v1.Get("/products/:id", h.GetProduct)

	authn := AuthMiddleware(h.auth)
	admin := RequireRole(domain.RoleAdmin)

	v1.Get("/profile", authn, h.Profile)

	v1.Post("/products", authn, admin, h.CreateProduct)
	v1.Put("/products/:id", authn, admin, h.UpdateProduct)
	v1.Delete("/products/:id", authn, admin, h.DeleteProduct)

	v1.Get("/customers", authn, admin, h.ListCustomers)
	v1.Post("/customers", authn, admin, h.CreateCustomer)
	v1.Get("/customers/:id", authn, h.GetCustomer)
	v1.Put("/customers/:id", authn, h.UpdateCustomer)
	v1.Delete("/customers/:id", authn, admin, h.DeleteCustomer)

	v1.Get("/sales", authn, admin, h.ListSales)
	v1.Get("/sales/customer/:customerId", authn, h.ListCustomerSales)
	v1.Get("/sales/:id", authn, h.GetSale)
	v1.Post("/sales", authn, h.CreateSale)
	v1.Put("/sales/:id", authn, admin, h.UpdateSale)
	v1.Delete("/sales/:id", authn, admin, h.DeleteSale)

	v1.Post("/receipts/:saleId", authn, h.SendReceipt)

	v1.Get("/cache/stats", authn, admin, h.CacheStats)

	return app
}
