package api

import (
	"errors"
	"log"

	"github.com/example/storefront-demo/modules/auth"
	"github.com/example/storefront-demo/modules/catalog"
	"github.com/example/storefront-demo/modules/customer"
	"github.com/example/storefront-demo/modules/receipt"
	"github.com/example/storefront-demo/modules/sales"
	"github.com/gofiber/fiber/v2"
)

type errorClass struct {
	status int
	code   string
	errs   []error
}

// errorClasses maps domain errors to HTTP statuses. Workflow failures
// caused by the request itself are 400 even when they name a missing entity.
var errorClasses = []errorClass{
	{fiber.StatusNotFound, "not_found", []error{
		sales.ErrSaleNotFound,
		receipt.ErrSaleNotFound,
		catalog.ErrProductNotFound,
		customer.ErrCustomerNotFound,
		auth.ErrUserNotFound,
	}},
	{fiber.StatusBadRequest, "bad_request", []error{
		sales.ErrInvalidLineItem,
		sales.ErrInvalidSale,
		sales.ErrCustomerNotFound,
		sales.ErrProductNotFound,
		sales.ErrInsufficientStock,
		catalog.ErrInvalidProduct,
		customer.ErrInvalidCustomer,
		auth.ErrInvalidEmail,
		auth.ErrWeakPassword,
		auth.ErrPasswordTooLong,
	}},
	{fiber.StatusConflict, "conflict", []error{
		sales.ErrConcurrencyConflict,
		catalog.ErrSKUExists,
		customer.ErrDocumentExists,
		auth.ErrUserExists,
	}},
	{fiber.StatusUnauthorized, "unauthorized", []error{
		auth.ErrInvalidCredentials,
		auth.ErrInvalidToken,
		auth.ErrExpiredToken,
	}},
	{fiber.StatusUnprocessableEntity, "unprocessable", []error{
		receipt.ErrNoCustomerEmail,
	}},
}

// writeError renders err with the status its class maps to.
func writeError(c *fiber.Ctx, err error) error {
	for _, class := range errorClasses {
		for _, target := range class.errs {
			if errors.Is(err, target) {
				return c.Status(class.status).JSON(ErrorResponse{
					Error:   class.code,
					Message: err.Error(),
				})
			}
		}
	}

	log.Printf("[api] %s %s failed: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "server_error",
		Message: "Internal Server Error",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

// customErrorHandler handles errors returned by fiber itself.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
