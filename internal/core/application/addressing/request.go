// Package addressing resolves client-supplied postal codes and house numbers
// into complete addresses before any database write happens.
//
// Resolution is the fetch stage of order creation: it only reads from the
// postal-code lookup and the geocoder. Its output, ResolvedRoute, is the sole
// input the commit stage accepts.
package addressing

import (
	"errors"
	"strings"

	"deliverytracker/internal/core/domain/model/address"
	"deliverytracker/internal/core/domain/model/kernel"
	"deliverytracker/internal/pkg/guard"
)

// ErrRequestIsNotConstructed is returned by Validate on a zero Request.
var ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest constructor")

// Request is what a client provides for one address: the postal code and the
// parts the postal-code lookup cannot know.
type Request struct {
	postalCode kernel.PostalCode
	number     string
	complement string

	guard guard.ConstructorGuard
}

// NewRequest normalizes the postal code and checks number and complement
// against the address limits, so bad client input never reaches the lookups.
// A malformed postal code fails with kernel.InvalidPostalCodeError.
func NewRequest(postalCode, number, complement string) (Request, error) {
	r := Request{guard: guard.NewConstructorGuard()}

	pc, pcErr := kernel.NewPostalCode(postalCode)
	number = strings.TrimSpace(number)
	if err := errors.Join(pcErr, address.ValidateClientFields(number, complement)); err != nil {
		return Request{}, err
	}

	r.postalCode = pc
	r.number = number
	r.complement = strings.TrimSpace(complement)
	return r, nil
}

// Validate reports whether the Request was built by NewRequest.
func (r Request) Validate() error {
	return r.guard.Validate(ErrRequestIsNotConstructed)
}

// PostalCode returns the normalized postal code.
func (r Request) PostalCode() kernel.PostalCode { return r.postalCode }

// Number returns the house number.
func (r Request) Number() string { return r.number }

// Complement returns the optional complement.
func (r Request) Complement() string { return r.complement }
