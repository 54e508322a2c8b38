package api

import (
	"fmt"
	"strings"

	"github.com/example/storefront-demo/domain/sale"
	domain "github.com/example/storefront-demo/domain/user"
	"github.com/example/storefront-demo/modules/sales"
	"github.com/gofiber/fiber/v2"
)

// ownsSale reports whether the caller may see s. Admins see every sale;
// customers only those whose customer record carries their email.
func ownsSale(claims *domain.Claims, s *sale.Sale) bool {
	if claims == nil {
		return false
	}
	if claims.Role == domain.RoleAdmin {
		return true
	}
	return s.Customer != nil && s.Customer.Email != "" && strings.EqualFold(s.Customer.Email, claims.Email)
}

// visibleSale loads a sale the caller owns. Sales of other customers are
// reported as not found.
func (h *Handlers) visibleSale(c *fiber.Ctx, id string) (*sale.Sale, error) {
	s, err := h.sales.GetSale(c.UserContext(), id)
	if err != nil {
		return nil, err
	}
	if !ownsSale(currentClaims(c), s) {
		return nil, fmt.Errorf("%w: %s", sales.ErrSaleNotFound, id)
	}
	return s, nil
}

// ListSales returns a page of sales, newest first.
func (h *Handlers) ListSales(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 10)
	if page < 1 || pageSize < 1 {
		return badRequest(c, "page and pageSize must be positive")
	}

	list, err := h.sales.ListSales(c.UserContext(), page, pageSize)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(PageResponse[SaleResponse]{Data: toSaleResponses(list), Page: page, PageSize: pageSize})
}

// GetSale returns one fully resolved sale.
func (h *Handlers) GetSale(c *fiber.Ctx) error {
	s, err := h.visibleSale(c, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toSaleResponse(s))
}

// ListCustomerSales returns every sale of one customer the caller may see.
func (h *Handlers) ListCustomerSales(c *fiber.Ctx) error {
	list, err := h.sales.ListSalesByCustomer(c.UserContext(), c.Params("customerId"))
	if err != nil {
		return writeError(c, err)
	}
	claims := currentClaims(c)
	visible := make([]sale.Sale, 0, len(list))
	for i := range list {
		if ownsSale(claims, &list[i]) {
			visible = append(visible, list[i])
		}
	}
	return c.JSON(toSaleResponses(visible))
}

// CreateSale runs the sale workflow and returns the stored sale.
func (h *Handlers) CreateSale(c *fiber.Ctx) error {
	var req SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	s, err := h.sales.CreateSale(c.UserContext(), req.toCommand())
	if err != nil {
		return writeError(c, err)
	}
	c.Location("/api/v1/sales/" + s.ID)
	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(s))
}

// UpdateSale replaces a sale's header and lines.
func (h *Handlers) UpdateSale(c *fiber.Ctx) error {
	var req SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.sales.UpdateSale(c.UserContext(), c.Params("id"), req.toCommand()); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteSale removes a sale and restores its stock.
func (h *Handlers) DeleteSale(c *fiber.Ctx) error {
	if err := h.sales.DeleteSale(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
