// Package kernel provides value objects shared by every aggregate of the
// delivery tracker.
//
// The package includes:
//   - PostalCode: an 8-digit postal code normalized from free-form input
//   - Coordinates: a latitude/longitude pair produced by geocoding
//   - TrackingCode: the public "DT-XXXXXXXX" identifier of an order
//
// Values are immutable and must be built through their constructors; the zero
// value of each type fails Validate.
package kernel
