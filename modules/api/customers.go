package api

import (
	"github.com/example/storefront-demo/modules/customer"
	"github.com/gofiber/fiber/v2"
)

// ListCustomers returns a page of customers.
func (h *Handlers) ListCustomers(c *fiber.Ctx) error {
	resp, err := h.customers.ListCustomers(c.UserContext(), customer.ListCustomersRequest{
		Page:            c.QueryInt("page", 1),
		PageSize:        c.QueryInt("pageSize", 10),
		IncludeInactive: c.QueryBool("includeInactive", false),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// GetCustomer returns one customer.
func (h *Handlers) GetCustomer(c *fiber.Ctx) error {
	cust, err := h.customers.GetCustomer(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(cust)
}

// CreateCustomer registers a customer.
func (h *Handlers) CreateCustomer(c *fiber.Ctx) error {
	var req customer.CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cust, err := h.customers.CreateCustomer(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cust)
}

// UpdateCustomer replaces a customer's editable fields.
func (h *Handlers) UpdateCustomer(c *fiber.Ctx) error {
	var req customer.UpdateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.ID = c.Params("id")

	cust, err := h.customers.UpdateCustomer(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(cust)
}

// DeleteCustomer deactivates a customer.
func (h *Handlers) DeleteCustomer(c *fiber.Ctx) error {
	if err := h.customers.DeleteCustomer(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
