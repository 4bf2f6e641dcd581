package queries

import (
	"errors"

	"deliverytracker/internal/core/domain/model/kernel"
	"deliverytracker/internal/pkg/errs"
	"deliverytracker/internal/pkg/guard"
)

var ErrTrackOrderQueryIsNotConstructed = errors.New(
	"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
)

// TrackOrderQuery is the anonymous tracking lookup. The code is matched
// case-insensitively.
type TrackOrderQuery struct {
	trackingCode string

	guard guard.ConstructorGuard
}

// NewTrackOrderQuery normalizes the code to uppercase.
func NewTrackOrderQuery(trackingCode string) (TrackOrderQuery, error) {
	code := kernel.NormalizeTrackingCode(trackingCode)
	if code == "" {
		return TrackOrderQuery{}, errs.NewValueIsRequiredError("tracking code")
	}
	return TrackOrderQuery{trackingCode: code, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

// TrackingCode returns the normalized code.
func (q TrackOrderQuery) TrackingCode() string {
	return q.trackingCode
}
