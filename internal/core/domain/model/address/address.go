// Package address holds the Address entity: a fully resolved postal address
// owned by exactly one order.
package address

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"deliverytracker/internal/core/domain/model/kernel"
	"deliverytracker/internal/pkg/errs"
)

// StreetNotProvided replaces an empty street returned by the postal-code lookup.
const StreetNotProvided = "address not provided"

const (
	maxStreetLength     = 255
	maxNumberLength     = 20
	maxComplementLength = 100
	maxCityLength       = 100
	regionCodeLength    = 2
)

var (
	// ErrAddressIsNotConstructed is returned by Validate on an Address built without NewAddress or RestoreAddress.
	ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

	// ErrIdentityAlreadyAssigned is returned when a persisted Address receives a second identity.
	ErrIdentityAlreadyAssigned = errors.New("address identity is already assigned")
)

// Fields carries the textual parts of an address.
type Fields struct {
	Street     string
	Number     string
	Complement string
	City       string
	Region     string
}

// Address is immutable once created. The identity is assigned by the store on insert.
type Address struct {
	id          int64
	postalCode  kernel.PostalCode
	street      string
	number      string
	complement  string
	city        string
	region      string
	coordinates *kernel.Coordinates

	isConstructed bool
}

// NewAddress validates every field and returns a transient Address with no identity.
// Region is upper-cased; coordinates are optional.
func NewAddress(postalCode kernel.PostalCode, fields Fields, coordinates *kernel.Coordinates) (*Address, error) {
	a := &Address{isConstructed: true}

	if err := errors.Join(
		a.setPostalCode(postalCode),
		a.setStreet(fields.Street),
		a.setNumber(fields.Number),
		a.setComplement(fields.Complement),
		a.setCity(fields.City),
		a.setRegion(fields.Region),
		a.setCoordinates(coordinates),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAddress rebuilds a persisted Address.
func RestoreAddress(id int64, postalCode kernel.PostalCode, fields Fields, coordinates *kernel.Coordinates) (*Address, error) {
	a, err := NewAddress(postalCode, fields, coordinates)
	if err != nil {
		return nil, err
	}

	if err := a.AssignID(id); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate reports whether the Address was built by a constructor.
func (a *Address) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAddressIsNotConstructed
	}
	return nil
}

// AssignID records the identity generated by the store. It may be called once.
func (a *Address) AssignID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("address id", id, 1, "max int64")
	}
	if a.id != 0 {
		return ErrIdentityAlreadyAssigned
	}
	a.id = id
	return nil
}

// ID returns the store identity, or 0 for a transient Address.
func (a *Address) ID() int64 { return a.id }

// PostalCode returns the normalized postal code.
func (a *Address) PostalCode() kernel.PostalCode { return a.postalCode }

// Street returns the street name.
func (a *Address) Street() string { return a.street }

// Number returns the house number as given by the client.
func (a *Address) Number() string { return a.number }

// Complement returns the optional complement, or "".
func (a *Address) Complement() string { return a.complement }

// City returns the city name.
func (a *Address) City() string { return a.city }

// Region returns the two-letter region code.
func (a *Address) Region() string { return a.region }

// Coordinates returns the geocoded position when one was resolved.
func (a *Address) Coordinates() (kernel.Coordinates, bool) {
	if a.coordinates == nil {
		return kernel.Coordinates{}, false
	}
	return *a.coordinates, true
}

func (a *Address) String() string {
	return fmt.Sprintf("%s, %s, %s - %s, %s", a.street, a.number, a.city, a.region, a.postalCode.Formatted())
}

func (a *Address) setPostalCode(postalCode kernel.PostalCode) error {
	if err := postalCode.Validate(); err != nil {
		return err
	}
	a.postalCode = postalCode
	return nil
}

func (a *Address) setStreet(street string) error {
	street = strings.TrimSpace(street)
	if err := requireText("street", street, maxStreetLength); err != nil {
		return err
	}
	a.street = street
	return nil
}

// ValidateClientFields checks the parts of an address a client types in
// itself, using the same limits NewAddress applies.
func ValidateClientFields(number, complement string) error {
	return errors.Join(
		validateNumber(strings.TrimSpace(number)),
		validateComplement(strings.TrimSpace(complement)),
	)
}

func (a *Address) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if err := validateNumber(number); err != nil {
		return err
	}
	a.number = number
	return nil
}

func (a *Address) setComplement(complement string) error {
	complement = strings.TrimSpace(complement)
	if err := validateComplement(complement); err != nil {
		return err
	}
	a.complement = complement
	return nil
}

func validateNumber(number string) error {
	return requireText("number", number, maxNumberLength)
}

func validateComplement(complement string) error {
	if len(complement) > maxComplementLength {
		return errs.NewValueIsInvalidErrorWithCause("complement",
			fmt.Errorf("longer than %d characters", maxComplementLength))
	}
	return nil
}

func (a *Address) setCity(city string) error {
	city = strings.TrimSpace(city)
	if err := requireText("city", city, maxCityLength); err != nil {
		return err
	}
	a.city = city
	return nil
}

func (a *Address) setRegion(region string) error {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		return errs.NewValueIsRequiredError("region")
	}
	if len(region) != regionCodeLength || !isLetters(region) {
		return errs.NewValueIsInvalidErrorWithCause("region",
			fmt.Errorf("%q is not a two-letter code", region))
	}
	a.region = region
	return nil
}

func (a *Address) setCoordinates(coordinates *kernel.Coordinates) error {
	if coordinates == nil {
		return nil
	}
	if err := coordinates.Validate(); err != nil {
		return err
	}
	c := *coordinates
	a.coordinates = &c
	return nil
}

func requireText(name, value string, maxLength int) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	if len(value) > maxLength {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("longer than %d characters", maxLength))
	}
	return nil
}

func isLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
