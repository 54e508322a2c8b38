// Package events defines the typed events published by the sales module.
package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// SaleCreatedEvent is emitted after a sale has been committed.
type SaleCreatedEvent struct {
	SaleID     string    `json:"sale_id"`
	CustomerID string    `json:"customer_id"`
	Total      string    `json:"total"`
	ProductIDs []string  `json:"product_ids"`
	CreatedAt  time.Time `json:"created_at"`
}

// SaleCreatedV1 is the typed event definition for sale creation.
// Subject: events.sales.v1.sale-created
var SaleCreatedV1 = helper.EventDefinition[SaleCreatedEvent](
	"sales", "SaleCreated", "v1",
)

// SaleUpdatedEvent is emitted after a sale's lines have been replaced.
// ProductIDs covers both the previous and the new lines.
type SaleUpdatedEvent struct {
	SaleID     string    `json:"sale_id"`
	CustomerID string    `json:"customer_id"`
	Total      string    `json:"total"`
	ProductIDs []string  `json:"product_ids"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SaleUpdatedV1 is the typed event definition for sale updates.
// Subject: events.sales.v1.sale-updated
var SaleUpdatedV1 = helper.EventDefinition[SaleUpdatedEvent](
	"sales", "SaleUpdated", "v1",
)

// SaleDeletedEvent is emitted after a sale has been removed and its stock restored.
type SaleDeletedEvent struct {
	SaleID     string    `json:"sale_id"`
	CustomerID string    `json:"customer_id"`
	ProductIDs []string  `json:"product_ids"`
	DeletedAt  time.Time `json:"deleted_at"`
}

// SaleDeletedV1 is the typed event definition for sale deletion.
// Subject: events.sales.v1.sale-deleted
var SaleDeletedV1 = helper.EventDefinition[SaleDeletedEvent](
	"sales", "SaleDeleted", "v1",
)
