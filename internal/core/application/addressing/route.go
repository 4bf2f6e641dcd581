package addressing

import (
	"errors"

	"deliverytracker/internal/core/domain/model/address"
	"deliverytracker/internal/pkg/guard"
)

// ErrRouteIsNotResolved is returned by Validate on a ResolvedRoute that did
// not come out of Resolver.ResolveRoute.
var ErrRouteIsNotResolved = errors.New("ResolvedRoute must be produced by Resolver.ResolveRoute")

// ResolvedRoute holds a fully resolved, not yet persisted origin and destination.
// Only Resolver can produce a valid one.
type ResolvedRoute struct {
	origin      *address.Address
	destination *address.Address

	guard guard.ConstructorGuard
}

// Validate reports whether the route came out of the resolver.
func (r ResolvedRoute) Validate() error {
	return r.guard.Validate(ErrRouteIsNotResolved)
}

// Origin returns the pickup address.
func (r ResolvedRoute) Origin() *address.Address { return r.origin }

// Destination returns the delivery address.
func (r ResolvedRoute) Destination() *address.Address { return r.destination }
