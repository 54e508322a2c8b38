package sales

import (
	"context"
	"log"
	"time"

	"github.com/example/storefront-demo/domain/sale"
	"github.com/example/storefront-demo/events"
	"github.com/go-monolith/mono"
)

func (m *Module) createSale(ctx context.Context, req SaleCommand, _ *mono.Msg) (sale.Sale, error) {
	created, err := m.service.CreateSale(ctx, req)
	if err != nil {
		return sale.Sale{}, err
	}

	// Published only after commit; a failed publish never undoes the sale.
	if m.eventBus != nil {
		event := events.SaleCreatedEvent{
			SaleID:     created.ID,
			CustomerID: created.CustomerID,
			Total:      created.Total.StringFixed(2),
			ProductIDs: created.ProductIDs(),
			CreatedAt:  created.CreatedAt,
		}
		if err := events.SaleCreatedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[sales] Warning: failed to publish SaleCreated event for sale %s: %v", created.ID, err)
		}
	}

	return *created, nil
}

func (m *Module) getSale(ctx context.Context, req GetSaleRequest, _ *mono.Msg) (sale.Sale, error) {
	s, err := m.service.GetSale(ctx, req.ID)
	if err != nil {
		return sale.Sale{}, err
	}
	return *s, nil
}

func (m *Module) listSales(ctx context.Context, req ListSalesRequest, _ *mono.Msg) (ListSalesResponse, error) {
	sales, err := m.service.ListSales(ctx, req.Page, req.PageSize)
	if err != nil {
		return ListSalesResponse{}, err
	}
	return ListSalesResponse{Sales: sales}, nil
}

func (m *Module) listSalesByCustomer(ctx context.Context, req ListSalesByCustomerRequest, _ *mono.Msg) (ListSalesResponse, error) {
	sales, err := m.service.ListSalesByCustomer(ctx, req.CustomerID)
	if err != nil {
		return ListSalesResponse{}, err
	}
	return ListSalesResponse{Sales: sales}, nil
}

func (m *Module) updateSale(ctx context.Context, req UpdateSaleRequest, _ *mono.Msg) (SaleChangedResponse, error) {
	updated, previous, err := m.service.UpdateSale(ctx, req.ID, req.SaleCommand)
	if err != nil {
		return SaleChangedResponse{ID: req.ID}, err
	}

	if m.eventBus != nil {
		event := events.SaleUpdatedEvent{
			SaleID:     updated.ID,
			CustomerID: updated.CustomerID,
			Total:      updated.Total.StringFixed(2),
			ProductIDs: unionProductIDs(previous, updated),
			UpdatedAt:  updated.UpdatedAt,
		}
		if err := events.SaleUpdatedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[sales] Warning: failed to publish SaleUpdated event for sale %s: %v", updated.ID, err)
		}
	}

	return SaleChangedResponse{ID: updated.ID, Changed: true}, nil
}

func (m *Module) deleteSale(ctx context.Context, req DeleteSaleRequest, _ *mono.Msg) (SaleChangedResponse, error) {
	removed, err := m.service.DeleteSale(ctx, req.ID)
	if err != nil {
		return SaleChangedResponse{ID: req.ID}, err
	}

	if m.eventBus != nil {
		event := events.SaleDeletedEvent{
			SaleID:     removed.ID,
			CustomerID: removed.CustomerID,
			ProductIDs: removed.ProductIDs(),
			DeletedAt:  time.Now(),
		}
		if err := events.SaleDeletedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[sales] Warning: failed to publish SaleDeleted event for sale %s: %v", removed.ID, err)
		}
	}

	return SaleChangedResponse{ID: removed.ID, Changed: true}, nil
}

// unionProductIDs lists every product touched by either version of a sale.
func unionProductIDs(sales ...*sale.Sale) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, s := range sales {
		if s == nil {
			continue
		}
		for _, id := range s.ProductIDs() {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
