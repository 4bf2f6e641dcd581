// Package ports defines the contracts between the application core and its
// adapters: persistence, external address services, and credential handling.
package ports

import (
	"context"

	"deliverytracker/internal/core/domain/model/kernel"
	"deliverytracker/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Pending timeline events are written together with the order and then
// cleared from the aggregate, so each event is inserted exactly once.
type OrderRepository interface {
	// Add inserts a new order and its pending events, then assigns the order identity.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes status and updated_at and appends pending events.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by identity.
	// Returns errs.ObjectNotFoundError when no order matches.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetForUpdate retrieves an order and locks its row until the transaction ends.
	// Concurrent status updates of one order are serialized so timeline order matches commit order.
	GetForUpdate(ctx context.Context, id int64) (*order.Order, error)

	// ExistsByTrackingCode reports whether an order already uses code.
	ExistsByTrackingCode(ctx context.Context, code kernel.TrackingCode) (bool, error)
}
