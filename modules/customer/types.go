package customer

import domain "github.com/example/storefront-demo/domain/customer"

// CustomerFields are the editable fields shared by create and update.
type CustomerFields struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	DocumentNumber string `json:"document_number"`
	DocumentType   string `json:"document_type,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	City           string `json:"city,omitempty"`
	CustomerType   string `json:"customer_type,omitempty"`
}

// CreateCustomerRequest represents the request to create a customer.
type CreateCustomerRequest struct {
	CustomerFields
}

// UpdateCustomerRequest replaces a customer's editable fields.
type UpdateCustomerRequest struct {
	ID string `json:"id"`
	CustomerFields
	IsActive bool `json:"is_active"`
}

// GetCustomerRequest represents the request to get a customer by ID.
type GetCustomerRequest struct {
	ID string `json:"id"`
}

// ListCustomersRequest selects a page of customers. Page is 1-indexed.
type ListCustomersRequest struct {
	Page            int  `json:"page"`
	PageSize        int  `json:"page_size"`
	IncludeInactive bool `json:"include_inactive"`
}

// ListCustomersResponse contains one page of customers.
type ListCustomersResponse struct {
	Customers []domain.Customer `json:"customers"`
	Page      int               `json:"page"`
	PageSize  int               `json:"page_size"`
}

// DeleteCustomerRequest represents the request to deactivate a customer.
type DeleteCustomerRequest struct {
	ID string `json:"id"`
}

// DeleteCustomerResponse represents the response after deactivating a customer.
type DeleteCustomerResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
