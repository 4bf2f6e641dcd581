package order

import (
	"errors"
	"fmt"
	"time"

	"deliverytracker/internal/core/domain/model/kernel"
	"deliverytracker/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrTerminalStateViolation is the sentinel for transitions out of a terminal status.
	ErrTerminalStateViolation = errors.New("order is in a terminal status")

	// ErrIdentityAlreadyAssigned is returned when a persisted Order receives a second identity.
	ErrIdentityAlreadyAssigned = errors.New("order identity is already assigned")
)

// TerminalStateViolationError reports a rejected transition out of Delivered or Canceled.
type TerminalStateViolationError struct {
	OrderID   int64
	Current   Status
	Requested Status
}

// NewTerminalStateViolationError creates a TerminalStateViolationError.
func NewTerminalStateViolationError(orderID int64, current, requested Status) *TerminalStateViolationError {
	return &TerminalStateViolationError{OrderID: orderID, Current: current, Requested: requested}
}

func (e *TerminalStateViolationError) Error() string {
	return fmt.Sprintf("%s: cannot change order %d from %q to %q",
		ErrTerminalStateViolation, e.OrderID, e.Current, e.Requested)
}

func (e *TerminalStateViolationError) Unwrap() error {
	return ErrTerminalStateViolation
}

// Order is the aggregate root of the delivery lifecycle.
//
// Order follows these invariants:
//   - Status equals the status of the most recent timeline event
//   - Delivered and Canceled accept no further transition
//   - Events are only ever appended; PendingEvents holds those not yet persisted
//   - Origin and destination reference addresses owned by this order alone
type Order struct {
	id                   int64
	trackingCode         kernel.TrackingCode
	status               Status
	ownerID              int64
	originAddressID      int64
	destinationAddressID int64
	createdAt            time.Time
	updatedAt            time.Time

	pendingEvents []Event

	isConstructed bool
}

// NewOrder creates an order in Created status and queues its first timeline event.
// The addresses must already be persisted so their identities are known.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewTrackingCode(), userID, origin.ID(), destination.ID(), time.Now())
func NewOrder(
	trackingCode kernel.TrackingCode,
	ownerID, originAddressID, destinationAddressID int64,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Created,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setTrackingCode(trackingCode),
		o.setOwnerID(ownerID),
		o.setAddresses(originAddressID, destinationAddressID),
		o.setTimestamps(now, now),
	); err != nil {
		return nil, err
	}

	created, err := NewEvent(Created, CreatedEventDescription, o.createdAt)
	if err != nil {
		return nil, err
	}
	o.pendingEvents = append(o.pendingEvents, created)

	return o, nil
}

// RestoreOrder rebuilds a persisted order without queuing any event.
func RestoreOrder(
	id int64,
	trackingCode kernel.TrackingCode,
	status Status,
	ownerID, originAddressID, destinationAddressID int64,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.AssignID(id),
		o.setTrackingCode(trackingCode),
		o.setStatus(status),
		o.setOwnerID(ownerID),
		o.setAddresses(originAddressID, destinationAddressID),
		o.setTimestamps(createdAt, updatedAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate reports whether the Order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// AssignID records the identity generated by the store. It may be called once.
func (o *Order) AssignID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("order id", id, 1, "max int64")
	}
	if o.id != 0 {
		return ErrIdentityAlreadyAssigned
	}
	o.id = id
	return nil
}

// ChangeStatus moves the order to target and queues the matching timeline event.
//
// Any valid target is accepted from Created or InTransit. A terminal current
// status rejects every target with TerminalStateViolationError and leaves the
// order untouched.
func (o *Order) ChangeStatus(target Status, now time.Time) error {
	if o.status.IsTerminal() {
		return NewTerminalStateViolationError(o.id, o.status, target)
	}
	if err := target.Validate(); err != nil {
		return err
	}

	description, _ := target.DefaultDescription()
	event, err := NewEvent(target, description, now)
	if err != nil {
		return err
	}

	o.status = target
	o.updatedAt = event.CreatedAt()
	o.pendingEvents = append(o.pendingEvents, event)
	return nil
}

// PendingEvents returns the events appended since the order was loaded or last flushed.
func (o *Order) PendingEvents() []Event {
	events := make([]Event, len(o.pendingEvents))
	copy(events, o.pendingEvents)
	return events
}

// ClearPendingEvents drops the queued events once the store has persisted them.
func (o *Order) ClearPendingEvents() {
	o.pendingEvents = nil
}

// ID returns the store identity, or 0 for a transient order.
func (o *Order) ID() int64 { return o.id }

// TrackingCode returns the public tracking code.
func (o *Order) TrackingCode() kernel.TrackingCode { return o.trackingCode }

// Status returns the current status.
func (o *Order) Status() Status { return o.status }

// OwnerID returns the identity of the user who placed the order.
func (o *Order) OwnerID() int64 { return o.ownerID }

// OriginAddressID returns the identity of the pickup address.
func (o *Order) OriginAddressID() int64 { return o.originAddressID }

// DestinationAddressID returns the identity of the delivery address.
func (o *Order) DestinationAddressID() int64 { return o.destinationAddressID }

// CreatedAt returns the creation time in UTC.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the time of the last accepted transition in UTC.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

func (o *Order) setTrackingCode(code kernel.TrackingCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	o.trackingCode = code
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setOwnerID(ownerID int64) error {
	if err := positiveID("owner id", ownerID); err != nil {
		return err
	}
	o.ownerID = ownerID
	return nil
}

func (o *Order) setAddresses(originID, destinationID int64) error {
	if err := errors.Join(
		positiveID("origin address id", originID),
		positiveID("destination address id", destinationID),
	); err != nil {
		return err
	}
	if originID == destinationID {
		return errs.NewValueIsInvalidErrorWithCause("destination address id",
			fmt.Errorf("address %d cannot be both origin and destination", originID))
	}
	o.originAddressID = originID
	o.destinationAddressID = destinationID
	return nil
}

func (o *Order) setTimestamps(createdAt, updatedAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	if updatedAt.Before(createdAt) {
		return errs.NewValueIsInvalidErrorWithCause("updated at", fmt.Errorf("%s is before created at %s",
			updatedAt.Format(time.RFC3339), createdAt.Format(time.RFC3339)))
	}
	o.createdAt = createdAt.UTC()
	o.updatedAt = updatedAt.UTC()
	return nil
}
