package kernel

import (
	"errors"
	"fmt"
	"math"

	"deliverytracker/internal/pkg/errs"
	"deliverytracker/internal/pkg/guard"
)

const (
	// LatitudeMin is the southernmost valid latitude.
	LatitudeMin = -90.0
	// LatitudeMax is the northernmost valid latitude.
	LatitudeMax = 90.0
	// LongitudeMin is the westernmost valid longitude.
	LongitudeMin = -180.0
	// LongitudeMax is the easternmost valid longitude.
	LongitudeMax = 180.0
)

// ErrCoordinatesIsNotConstructed is returned by Validate on zero Coordinates.
var ErrCoordinatesIsNotConstructed = errs.NewValueIsRequiredError(
	"coordinates must be created via NewCoordinates constructor")

// Coordinates is a WGS84 latitude/longitude pair.
// The zero value is invalid; (0, 0) built through NewCoordinates is a valid point.
type Coordinates struct { //nolint:recvcheck // setters use pointer receivers during construction
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewCoordinates validates both components and returns the pair.
//
// Example:
//
//	c, err := kernel.NewCoordinates(-23.5613, -46.6565)
func NewCoordinates(latitude, longitude float64) (Coordinates, error) {
	c := Coordinates{guard: guard.NewConstructorGuard()}

	if err := errors.Join(c.setLatitude(latitude), c.setLongitude(longitude)); err != nil {
		return Coordinates{}, err
	}

	return c, nil
}

// Validate reports whether the Coordinates were built by NewCoordinates.
func (c Coordinates) Validate() error {
	return c.guard.Validate(ErrCoordinatesIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (c Coordinates) Latitude() float64 {
	return c.latitude
}

// Longitude returns the longitude in decimal degrees.
func (c Coordinates) Longitude() float64 {
	return c.longitude
}

// IsEqual compares two coordinate pairs. Both must be constructed.
func (c Coordinates) IsEqual(other Coordinates) (bool, error) {
	if err := errors.Join(c.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return c.latitude == other.latitude && c.longitude == other.longitude, nil
}

func (c Coordinates) String() string {
	return fmt.Sprintf("Coordinates(%.6f,%.6f)", c.latitude, c.longitude)
}

func (c *Coordinates) setLatitude(latitude float64) error {
	if latitude < LatitudeMin || latitude > LatitudeMax || math.IsNaN(latitude) {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}

	c.latitude = latitude
	return nil
}

func (c *Coordinates) setLongitude(longitude float64) error {
	if longitude < LongitudeMin || longitude > LongitudeMax || math.IsNaN(longitude) {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	c.longitude = longitude
	return nil
}
