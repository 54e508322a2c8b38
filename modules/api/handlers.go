package api

import (
	"context"

	"github.com/example/storefront-demo/modules/auth"
	"github.com/example/storefront-demo/modules/catalog"
	"github.com/example/storefront-demo/modules/customer"
	"github.com/example/storefront-demo/modules/receipt"
	"github.com/example/storefront-demo/modules/sales"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
)

// HealthReporter is a module whose health is exposed on /health.
type HealthReporter interface {
	Name() string
	Health(ctx context.Context) mono.HealthStatus
}

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	auth      auth.AuthPort
	catalog   catalog.CatalogPort
	customers customer.CustomerPort
	sales     sales.SalesPort
	receipts  receipt.ReceiptPort
	reporters []HealthReporter
}

// Register handles user registration.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	u, err := h.auth.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ProfileResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	})
}

// Login handles user login.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	tokens, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(tokens)
}

// Refresh handles token refresh.
func (h *Handlers) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.RefreshToken == "" {
		return badRequest(c, "Refresh token is required")
	}

	tokens, err := h.auth.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(tokens)
}

// Profile returns the authenticated user.
func (h *Handlers) Profile(c *fiber.Ctx) error {
	claims := currentClaims(c)
	if claims == nil {
		return unauthorized(c, "Authentication required")
	}

	u, err := h.auth.GetUser(c.UserContext(), claims.UserID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(ProfileResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	})
}

// Health reports every registered module. Any unhealthy module turns the
// response into a 503.
func (h *Handlers) Health(c *fiber.Ctx) error {
	healthy := true
	modules := make(map[string]mono.HealthStatus, len(h.reporters))
	for _, r := range h.reporters {
		status := r.Health(c.UserContext())
		modules[r.Name()] = status
		healthy = healthy && status.Healthy
	}

	code := fiber.StatusOK
	state := "healthy"
	if !healthy {
		code = fiber.StatusServiceUnavailable
		state = "degraded"
	}
	return c.Status(code).JSON(fiber.Map{
		"status":  state,
		"modules": modules,
	})
}

// CacheStats returns the product cache counters.
func (h *Handlers) CacheStats(c *fiber.Ctx) error {
	stats, err := h.catalog.CacheStats(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}

// SendReceipt mails the receipt of a sale to its customer. Customers may
// only request receipts of their own sales.
func (h *Handlers) SendReceipt(c *fiber.Ctx) error {
	saleID := c.Params("saleId")
	if _, err := h.visibleSale(c, saleID); err != nil {
		return writeError(c, err)
	}
	resp, err := h.receipts.SendReceipt(c.UserContext(), saleID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(resp)
}
