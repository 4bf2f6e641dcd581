package commands

import (
	"errors"

	"deliverytracker/internal/core/application/addressing"
	"deliverytracker/internal/pkg/errs"
	"deliverytracker/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand asks to register a delivery between two addresses on
// behalf of an authenticated user.
//
// Example:
//
//	origin, _ := addressing.NewRequest("01310-100", "1000", "")
//	destination, _ := addressing.NewRequest("20040-002", "50", "sala 3")
//	cmd, err := NewCreateOrderCommand(caller.ID(), origin, destination)
//	if err != nil {
//	    return err
//	}
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	ownerID     int64
	origin      addressing.Request
	destination addressing.Request

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand checks that the owner is known and both address
// requests were built by addressing.NewRequest.
func NewCreateOrderCommand(ownerID int64, origin, destination addressing.Request) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOwnerID(ownerID),
		cmd.setOrigin(origin),
		cmd.setDestination(destination),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OwnerID returns the identity of the user placing the order.
func (c CreateOrderCommand) OwnerID() int64 {
	return c.ownerID
}

// Origin returns the pickup address request.
func (c CreateOrderCommand) Origin() addressing.Request {
	return c.origin
}

// Destination returns the drop-off address request.
func (c CreateOrderCommand) Destination() addressing.Request {
	return c.destination
}

func (c *CreateOrderCommand) setOwnerID(ownerID int64) error {
	if ownerID <= 0 {
		return errs.NewValueIsRequiredError("owner id")
	}

	c.ownerID = ownerID
	return nil
}

func (c *CreateOrderCommand) setOrigin(origin addressing.Request) error {
	if err := origin.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("origin", err)
	}

	c.origin = origin
	return nil
}

func (c *CreateOrderCommand) setDestination(destination addressing.Request) error {
	if err := destination.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("destination", err)
	}

	c.destination = destination
	return nil
}
