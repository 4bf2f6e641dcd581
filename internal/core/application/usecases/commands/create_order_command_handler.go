package commands

import (
	"context"
	"errors"
	"log/slog"

	"deliverytracker/internal/core/domain/model/address"
	"deliverytracker/internal/core/domain/model/kernel"
	"deliverytracker/internal/core/domain/model/order"
	"deliverytracker/internal/core/ports"
	"deliverytracker/internal/pkg/errs"
)

// MaxTrackingCodeAttempts bounds how many fresh codes are tried before the
// creation is given up as a store failure.
const MaxTrackingCodeAttempts = 5

var errTrackingCodesExhausted = errors.New("no unused tracking code found")

// CreateOrderCommandHandler registers an order in two stages. The fetch stage
// resolves both addresses through the RouteResolver; an invalid postal code
// ends the operation there with nothing written. The commit stage inserts both
// addresses, the order and its first event in one transaction.
//
// Any failure inside the transaction is reported as
// errs.RetryableStoreFailureError after the rollback.
type CreateOrderCommandHandler struct {
	resolver   RouteResolver
	uowFactory OrderUoWFactory
	clock      ports.Clock
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	resolver RouteResolver,
	uowFactory OrderUoWFactory,
	clock ports.Clock,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		resolver:   resolver,
		uowFactory: uowFactory,
		clock:      clock,
		logger:     logger.With("component", "create_order"),
	}
}

// Handle resolves the route, then persists it with a new order.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	route, err := h.resolver.ResolveRoute(ctx, cmd.Origin(), cmd.Destination())
	if err != nil {
		return nil, err
	}
	if err = route.Validate(); err != nil {
		return nil, err
	}

	o, err := h.commit(ctx, cmd.OwnerID(), route.Origin(), route.Destination())
	if err != nil {
		h.logger.ErrorContext(ctx, "order creation rolled back", "owner_id", cmd.OwnerID(), "error", err)
		return nil, errs.NewRetryableStoreFailureError("create order", err)
	}

	h.logger.InfoContext(ctx, "order created",
		"order_id", o.ID(),
		"tracking_code", o.TrackingCode().String(),
		"owner_id", o.OwnerID(),
	)
	return o, nil
}

func (h *CreateOrderCommandHandler) commit(
	ctx context.Context,
	ownerID int64,
	origin, destination *address.Address,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	addresses := uow.AddressRepository()
	orders := uow.OrderRepository()

	if err := addresses.Add(ctx, origin); err != nil {
		return nil, err
	}
	if err := addresses.Add(ctx, destination); err != nil {
		return nil, err
	}

	code, err := h.freshTrackingCode(ctx, orders)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(code, ownerID, origin.ID(), destination.ID(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	if err = orders.Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func (h *CreateOrderCommandHandler) freshTrackingCode(
	ctx context.Context,
	orders ports.OrderRepository,
) (kernel.TrackingCode, error) {
	for range MaxTrackingCodeAttempts {
		code := kernel.NewTrackingCode()
		taken, err := orders.ExistsByTrackingCode(ctx, code)
		if err != nil {
			return kernel.TrackingCode{}, err
		}
		if !taken {
			return code, nil
		}
		h.logger.WarnContext(ctx, "tracking code collision", "tracking_code", code.String())
	}
	return kernel.TrackingCode{}, errTrackingCodesExhausted
}
