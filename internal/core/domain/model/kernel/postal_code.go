package kernel

import (
	"errors"
	"fmt"
	"strings"

	"deliverytracker/internal/pkg/errs"
	"deliverytracker/internal/pkg/guard"
)

// PostalCodeLength is the number of digits in a normalized postal code.
const PostalCodeLength = 8

var (
	// ErrInvalidPostalCode is the sentinel for postal codes that are malformed
	// or unknown to the postal-code lookup.
	ErrInvalidPostalCode = errors.New("invalid postal code")

	// ErrPostalCodeIsNotConstructed is returned by Validate on a zero PostalCode.
	ErrPostalCodeIsNotConstructed = errs.NewValueIsRequiredError(
		"postal code must be created via NewPostalCode constructor")
)

// InvalidPostalCodeError reports a postal code that cannot be resolved.
// errors.Is matches ErrInvalidPostalCode, errs.ErrValueIsInvalid and Cause.
type InvalidPostalCodeError struct {
	Value string
	Cause error
}

// NewInvalidPostalCodeError creates an InvalidPostalCodeError without a cause.
func NewInvalidPostalCodeError(value string) *InvalidPostalCodeError {
	return &InvalidPostalCodeError{Value: value}
}

// NewInvalidPostalCodeErrorWithCause creates an InvalidPostalCodeError wrapping cause.
func NewInvalidPostalCodeErrorWithCause(value string, cause error) *InvalidPostalCodeError {
	return &InvalidPostalCodeError{Value: value, Cause: cause}
}

func (e *InvalidPostalCodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %q (cause: %v)", ErrInvalidPostalCode, e.Value, e.Cause)
	}
	return fmt.Sprintf("%s: %q", ErrInvalidPostalCode, e.Value)
}

func (e *InvalidPostalCodeError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInvalidPostalCode, errs.ErrValueIsInvalid}
	}
	return []error{ErrInvalidPostalCode, errs.ErrValueIsInvalid, e.Cause}
}

// PostalCode is a normalized, digits-only postal code.
type PostalCode struct {
	value string
	guard guard.ConstructorGuard
}

// NormalizePostalCode strips every non-digit character from raw.
func NormalizePostalCode(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NewPostalCode normalizes raw and checks that exactly PostalCodeLength digits remain.
//
// Example:
//
//	pc, err := kernel.NewPostalCode("01310-100")
//	// pc.String() == "01310100"
func NewPostalCode(raw string) (PostalCode, error) {
	digits := NormalizePostalCode(raw)
	if len(digits) != PostalCodeLength {
		return PostalCode{}, NewInvalidPostalCodeErrorWithCause(raw,
			fmt.Errorf("expected %d digits, got %d", PostalCodeLength, len(digits)))
	}

	return PostalCode{value: digits, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports whether the PostalCode was built by NewPostalCode.
func (p PostalCode) Validate() error {
	return p.guard.Validate(ErrPostalCodeIsNotConstructed)
}

// String returns the digits-only form, e.g. "01310100".
func (p PostalCode) String() string {
	return p.value
}

// Formatted returns the display form with a hyphen before the last three digits, e.g. "01310-100".
func (p PostalCode) Formatted() string {
	if len(p.value) != PostalCodeLength {
		return p.value
	}
	return p.value[:5] + "-" + p.value[5:]
}

// IsEqual compares two postal codes by value.
func (p PostalCode) IsEqual(other PostalCode) bool {
	return p.value == other.value
}
