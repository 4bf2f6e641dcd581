package ports

import (
	"context"
	"errors"

	"deliverytracker/internal/core/domain/model/kernel"
)

// ErrNoGeocodeMatch is returned by a Geocoder that found no position for the query.
var ErrNoGeocodeMatch = errors.New("no geocode match")

// PostalAddress is the street-level data a postal-code lookup knows about a code.
type PostalAddress struct {
	PostalCode kernel.PostalCode
	Street     string
	District   string
	City       string
	Region     string
}

// PostalCodeLookup resolves a postal code to its street, city and region.
// An unknown code yields kernel.InvalidPostalCodeError.
type PostalCodeLookup interface {
	Lookup(ctx context.Context, code kernel.PostalCode) (PostalAddress, error)
}

// GeocodeQuery is a structured free-text address.
type GeocodeQuery struct {
	Street string
	Number string
	City   string
	Region string
}

// Geocoder turns addresses into coordinates.
// A query without a result yields ErrNoGeocodeMatch.
type Geocoder interface {
	GeocodeAddress(ctx context.Context, query GeocodeQuery) (kernel.Coordinates, error)
	GeocodePostalCode(ctx context.Context, code kernel.PostalCode) (kernel.Coordinates, error)
}
