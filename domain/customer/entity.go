// Package customer holds the customer entity.
package customer

import "time"

// Customer represents a buyer. Delete clears IsActive; a customer with
// sales cannot be removed from the table.
type Customer struct {
	ID             string    `gorm:"primarykey;size:36" json:"id"`
	FirstName      string    `gorm:"size:100;not null" json:"first_name"`
	LastName       string    `gorm:"size:100;not null" json:"last_name"`
	DocumentNumber string    `gorm:"size:20;not null;uniqueIndex" json:"document_number"`
	DocumentType   string    `gorm:"size:50" json:"document_type,omitempty"`
	Email          string    `gorm:"size:100" json:"email,omitempty"`
	Phone          string    `gorm:"size:20" json:"phone,omitempty"`
	Address        string    `gorm:"size:200" json:"address,omitempty"`
	City           string    `gorm:"size:100" json:"city,omitempty"`
	CustomerType   string    `gorm:"size:50" json:"customer_type,omitempty"`
	IsActive       bool      `gorm:"not null;index" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName returns the table name for Customer model.
func (Customer) TableName() string {
	return "customers"
}

// FullName joins first and last name.
func (c Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
