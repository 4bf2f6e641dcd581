package queries

import (
	"errors"

	"deliverytracker/internal/core/domain/model/order"
	"deliverytracker/internal/pkg/errs"
	"deliverytracker/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOwnOrdersQuery or NewListAllOrdersQuery",
)

// ListOrdersQuery lists orders newest first, optionally restricted to one
// owner and one status.
//
// Example:
//
//	q, _ := NewListOwnOrdersQuery(caller.ID(), nil)
//	mine, err := handler.Handle(ctx, q)
//
//	inTransit := order.InTransit
//	q, _ = NewListAllOrdersQuery(&inTransit)
//	moving, err := handler.Handle(ctx, q)
type ListOrdersQuery struct {
	ownerID *int64
	status  *order.Status

	guard guard.ConstructorGuard
}

// NewListOwnOrdersQuery lists the orders of one owner.
func NewListOwnOrdersQuery(ownerID int64, status *order.Status) (ListOrdersQuery, error) {
	if ownerID <= 0 {
		return ListOrdersQuery{}, errs.NewValueIsInvalidError("owner id")
	}
	q, err := NewListAllOrdersQuery(status)
	if err != nil {
		return ListOrdersQuery{}, err
	}
	q.ownerID = &ownerID
	return q, nil
}

// NewListAllOrdersQuery lists every order. Callers must be admins.
func NewListAllOrdersQuery(status *order.Status) (ListOrdersQuery, error) {
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	return ListOrdersQuery{status: status, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through a constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// OwnerID returns the owner filter, if any.
func (q ListOrdersQuery) OwnerID() (int64, bool) {
	if q.ownerID == nil {
		return 0, false
	}
	return *q.ownerID, true
}

// Status returns the status filter, if any.
func (q ListOrdersQuery) Status() (order.Status, bool) {
	if q.status == nil {
		return order.Unknown, false
	}
	return *q.status, true
}
