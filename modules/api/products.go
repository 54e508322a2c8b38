package api

import (
	"github.com/example/storefront-demo/modules/catalog"
	"github.com/gofiber/fiber/v2"
)

// ListProducts returns a page of active products.
func (h *Handlers) ListProducts(c *fiber.Ctx) error {
	resp, err := h.catalog.ListProducts(c.UserContext(), catalog.ListProductsRequest{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", 10),
	})
	if err != nil {
		return writeError(c, err)
	}

	data := make([]ProductResponse, 0, len(resp.Products))
	for i := range resp.Products {
		data = append(data, toProductResponse(&resp.Products[i]))
	}
	return c.JSON(PageResponse[ProductResponse]{Data: data, Page: resp.Page, PageSize: resp.PageSize})
}

// GetProduct returns one product.
func (h *Handlers) GetProduct(c *fiber.Ctx) error {
	p, err := h.catalog.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toProductResponse(p))
}

// CreateProduct adds a product to the catalog.
func (h *Handlers) CreateProduct(c *fiber.Ctx) error {
	var req catalog.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	p, err := h.catalog.CreateProduct(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductResponse(p))
}

// UpdateProduct replaces a product's editable fields.
func (h *Handlers) UpdateProduct(c *fiber.Ctx) error {
	var req catalog.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.ID = c.Params("id")

	p, err := h.catalog.UpdateProduct(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toProductResponse(p))
}

// DeleteProduct deactivates a product.
func (h *Handlers) DeleteProduct(c *fiber.Ctx) error {
	if err := h.catalog.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
