package kernel

import (
	"fmt"
	"regexp"
	"strings"

	"deliverytracker/internal/pkg/errs"
	"deliverytracker/internal/pkg/guard"

	"github.com/google/uuid"
)

const (
	// TrackingCodePrefix starts every tracking code.
	TrackingCodePrefix = "DT-"
	// TrackingCodeRandomLength is the number of hex characters after the prefix.
	TrackingCodeRandomLength = 8
)

var trackingCodePattern = regexp.MustCompile(`^DT-[0-9A-F]{8}$`)

// ErrTrackingCodeIsNotConstructed is returned by Validate on a zero TrackingCode.
var ErrTrackingCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"tracking code must be created via NewTrackingCode or ParseTrackingCode")

// TrackingCode is the public identifier of an order, "DT-" followed by
// 8 uppercase hexadecimal characters.
type TrackingCode struct {
	value string
	guard guard.ConstructorGuard
}

// NewTrackingCode generates a fresh code from the random bits of a version 4 UUID.
// Uniqueness across orders is checked by the caller against the store.
func NewTrackingCode() TrackingCode {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return TrackingCode{
		value: TrackingCodePrefix + strings.ToUpper(hex[:TrackingCodeRandomLength]),
		guard: guard.NewConstructorGuard(),
	}
}

// NormalizeTrackingCode trims surrounding spaces and upper-cases raw.
func NormalizeTrackingCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ParseTrackingCode normalizes raw and validates its format.
// Lookups are case-insensitive: "dt-0a1b2c3d" parses to "DT-0A1B2C3D".
func ParseTrackingCode(raw string) (TrackingCode, error) {
	value := NormalizeTrackingCode(raw)
	if !trackingCodePattern.MatchString(value) {
		return TrackingCode{}, errs.NewValueIsInvalidErrorWithCause("tracking code",
			fmt.Errorf("%q does not match %s%s", raw, TrackingCodePrefix, "XXXXXXXX"))
	}

	return TrackingCode{value: value, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports whether the TrackingCode was built by a constructor.
func (c TrackingCode) Validate() error {
	return c.guard.Validate(ErrTrackingCodeIsNotConstructed)
}

func (c TrackingCode) String() string {
	return c.value
}

// IsEqual compares two tracking codes by value.
func (c TrackingCode) IsEqual(other TrackingCode) bool {
	return c.value == other.value
}
