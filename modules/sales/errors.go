package sales

import "errors"

// Workflow errors. Every one of them aborts the whole unit of work.
var (
	// ErrCustomerNotFound is returned when the sale references an unknown customer.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrProductNotFound is returned when a line references an unknown product.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when a product cannot cover the requested quantity.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidLineItem is returned for a structurally invalid line.
	ErrInvalidLineItem = errors.New("invalid line item")
	// ErrInvalidSale is returned for invalid header fields.
	ErrInvalidSale = errors.New("invalid sale")
	// ErrSaleNotFound is returned when the sale does not exist.
	ErrSaleNotFound = errors.New("sale not found")
	// ErrConcurrencyConflict is returned when the store rejected the commit
	// because of a competing writer. The whole operation may be retried.
	ErrConcurrencyConflict = errors.New("concurrency conflict")
)

// workflowErrors lists every sentinel a reply may carry, most specific first.
var workflowErrors = []error{
	ErrSaleNotFound,
	ErrCustomerNotFound,
	ErrProductNotFound,
	ErrInsufficientStock,
	ErrInvalidLineItem,
	ErrInvalidSale,
	ErrConcurrencyConflict,
}
