package order

import (
	"errors"
	"time"

	"deliverytracker/internal/pkg/errs"
)

// CreatedEventDescription is recorded on the first event of every order.
const CreatedEventDescription = "order registered in system"

// ErrEventIsNotConstructed is returned by Validate on an Event built without a constructor.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent constructor")

// Event is one append-only timeline entry. The label is captured at creation
// so later label changes never rewrite history.
type Event struct {
	id          int64
	orderID     int64
	status      Status
	label       string
	description string
	createdAt   time.Time

	isConstructed bool
}

// NewEvent creates a transient event for status with an optional description.
func NewEvent(status Status, description string, createdAt time.Time) (Event, error) {
	if err := status.Validate(); err != nil {
		return Event{}, err
	}
	if createdAt.IsZero() {
		return Event{}, errs.NewValueIsRequiredError("event created at")
	}

	return Event{
		status:        status,
		label:         status.Label(),
		description:   description,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}, nil
}

// RestoreEvent rebuilds a persisted event as stored.
func RestoreEvent(id, orderID int64, status Status, label, description string, createdAt time.Time) (Event, error) {
	if err := errors.Join(status.Validate(), positiveID("event id", id), positiveID("order id", orderID)); err != nil {
		return Event{}, err
	}

	return Event{
		id:            id,
		orderID:       orderID,
		status:        status,
		label:         label,
		description:   description,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}, nil
}

// Validate reports whether the Event was built by a constructor.
func (e Event) Validate() error {
	if !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the store identity, or 0 when not yet persisted.
func (e Event) ID() int64 { return e.id }

// OrderID returns the owning order identity, or 0 when not yet persisted.
func (e Event) OrderID() int64 { return e.orderID }

// Status returns the status recorded by the event.
func (e Event) Status() Status { return e.status }

// Label returns the human-readable status label.
func (e Event) Label() string { return e.label }

// Description returns the optional free-text description, or "".
func (e Event) Description() string { return e.description }

// CreatedAt returns the event timestamp in UTC.
func (e Event) CreatedAt() time.Time { return e.createdAt }

func positiveID(name string, id int64) error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError(name, id, 1, "max int64")
	}
	return nil
}
