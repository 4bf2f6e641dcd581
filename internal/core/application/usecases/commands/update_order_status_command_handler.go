package commands

import (
	"context"
	"errors"
	"log/slog"

	"deliverytracker/internal/core/domain/model/order"
	"deliverytracker/internal/core/domain/services"
	"deliverytracker/internal/core/ports"
	"deliverytracker/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler applies a status transition and appends the
// matching timeline event in one transaction. The order row is locked for the
// duration so concurrent updates are serialized.
//
// Errors:
//   - errs.ErrObjectNotFound when the order does not exist
//   - errs.ErrForbidden when the caller is neither owner nor admin
//   - order.ErrTerminalStateViolation when the order is delivered or canceled
//   - errs.ErrRetryableStoreFailure for any other failure, after rollback
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.AccessPolicy
	clock      ports.Clock
	logger     *slog.Logger
}

// NewUpdateOrderStatusCommandHandler creates a handler for status updates.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	clock ports.Clock,
	logger *slog.Logger,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAccessPolicy(),
		clock:      clock,
		logger:     logger.With("component", "update_order_status"),
	}
}

// Handle loads the order for update, authorizes the caller and applies the transition.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, errs.NewRetryableStoreFailureError("update order status", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	o, err := orders.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, storeFailure("update order status", err)
	}

	if err = h.policy.AuthorizeOrderAccess(cmd.Caller(), o); err != nil {
		return nil, err
	}

	previous := o.Status()
	if err = o.ChangeStatus(cmd.Status(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = orders.Update(ctx, o); err != nil {
		return nil, storeFailure("update order status", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.NewRetryableStoreFailureError("update order status", err)
	}

	h.logger.InfoContext(ctx, "order status changed",
		"order_id", o.ID(),
		"from", previous.String(),
		"to", o.Status().String(),
		"caller_id", cmd.Caller().ID(),
	)
	return o, nil
}

// storeFailure passes lookup misses through and marks everything else retryable.
func storeFailure(operation string, err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	return errs.NewRetryableStoreFailureError(operation, err)
}
