// Package queries contains the read operations of the delivery tracker.
// Handlers read through *gorm.DB with plain SQL and return flat view structs;
// no aggregate is loaded and nothing is written.
package queries

import (
	"time"
)

// AddressView is a stored address as shown to the order's owner or an admin.
type AddressView struct {
	ID         int64
	PostalCode string
	Street     string
	Number     string
	Complement *string
	City       string
	Region     string
	Latitude   *float64
	Longitude  *float64
}

// OrderView is the full detail of one order.
type OrderView struct {
	ID           int64
	TrackingCode string
	Status       string
	StatusLabel  string
	OwnerID      int64
	Origin       AddressView
	Destination  AddressView
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OrderSummary is one row of an order listing.
type OrderSummary struct {
	ID           int64
	TrackingCode string
	Status       string
	CreatedAt    time.Time
}

// PublicPlace is the part of an address that anonymous tracking may reveal.
type PublicPlace struct {
	City   string
	Region string
}

// TrackingEvent is one entry of an order's timeline.
type TrackingEvent struct {
	Status      string
	StatusLabel string
	Description *string
	CreatedAt   time.Time
}

// TrackingView is the anonymous view of an order.
type TrackingView struct {
	TrackingCode string
	Status       string
	StatusLabel  string
	Origin       PublicPlace
	Destination  PublicPlace
	Events       []TrackingEvent
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserView is a user without credentials.
type UserView struct {
	ID        int64
	Email     string
	FullName  *string
	Role      string
	CreatedAt time.Time
}

// StatusCount is the number of orders currently in one status.
type StatusCount struct {
	Status string
	Count  int64
}
