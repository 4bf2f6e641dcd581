package queries

import (
	"errors"

	"deliverytracker/internal/core/domain/model/user"
	"deliverytracker/internal/pkg/errs"
	"deliverytracker/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order with both addresses. Only the owner or an admin may read it.
type GetOrderQuery struct {
	caller  *user.User
	orderID int64

	guard guard.ConstructorGuard
}

// NewGetOrderQuery validates the caller and the order identity.
func NewGetOrderQuery(caller *user.User, orderID int64) (GetOrderQuery, error) {
	var callerErr, idErr error
	if caller == nil {
		callerErr = errs.NewValueIsRequiredError("caller")
	} else {
		callerErr = caller.Validate()
	}
	if orderID <= 0 {
		idErr = errs.NewValueIsInvalidError("order id")
	}
	if err := errors.Join(callerErr, idErr); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{caller: caller, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// Caller returns the authenticated reader.
func (q GetOrderQuery) Caller() *user.User { return q.caller }

// OrderID returns the requested order.
func (q GetOrderQuery) OrderID() int64 { return q.orderID }
