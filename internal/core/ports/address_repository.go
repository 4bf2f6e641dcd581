package ports

import (
	"context"

	"deliverytracker/internal/core/domain/model/address"
)

// AddressRepository defines the persistence contract for addresses.
// Addresses are insert-only.
type AddressRepository interface {
	// Add inserts a transient address and assigns its identity.
	Add(ctx context.Context, a *address.Address) error

	// Get retrieves an address by identity.
	Get(ctx context.Context, id int64) (*address.Address, error)
}
