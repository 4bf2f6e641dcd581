package order

import (
	"fmt"

	"deliverytracker/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	Created ──> InTransit ──> Delivered
//	   │            │
//	   └────────────┴──> Canceled
//
// Delivered and Canceled are terminal.
type Status int

const (
	// Unknown marks an uninitialized or unparseable status.
	Unknown Status = iota
	// Created is the initial status of every order.
	Created
	// InTransit means the parcel was collected and is out for delivery.
	InTransit
	// Delivered is terminal.
	Delivered
	// Canceled is terminal.
	Canceled
)

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Created, InTransit, Delivered, Canceled}
}

// ParseStatus maps the persisted/wire form ("created", "in_transit", "delivered", "canceled") to a Status.
func ParseStatus(s string) (Status, error) {
	for _, status := range Statuses() {
		if status.String() == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	switch s {
	case Created, InTransit, Delivered, Canceled:
		return nil
	case Unknown:
	}
	return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", int(s)))
}

// String returns the persisted/wire form of the status.
func (s Status) String() string {
	switch s {
	case Created:
		return "created"
	case InTransit:
		return "in_transit"
	case Delivered:
		return "delivered"
	case Canceled:
		return "canceled"
	case Unknown:
	}
	return "unknown"
}

// Label returns the human-readable label shown on the public timeline.
func (s Status) Label() string {
	switch s {
	case Created:
		return "Order created"
	case InTransit:
		return "Out for delivery"
	case Delivered:
		return "Delivered"
	case Canceled:
		return "Canceled"
	case Unknown:
	}
	return "Unknown"
}

// DefaultDescription returns the event description recorded when an order
// transitions into s. ok is false when the status has no default.
func (s Status) DefaultDescription() (description string, ok bool) {
	switch s {
	case InTransit:
		return "order collected and out for delivery", true
	case Delivered:
		return "order delivered successfully", true
	case Canceled:
		return "order canceled", true
	case Created, Unknown:
	}
	return "", false
}

// IsTerminal reports whether no transition may leave s.
func (s Status) IsTerminal() bool {
	switch s {
	case Delivered, Canceled:
		return true
	case Unknown, Created, InTransit:
	}
	return false
}
