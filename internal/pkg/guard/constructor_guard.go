// Package guard provides ConstructorGuard, a marker embedded in value objects,
// commands, and queries to detect zero-value instances that bypassed their
// constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing struct was built by its constructor.
// The zero value reports "not constructed".
//
// Example usage:
//
//	var ErrTrackOrderQueryIsNotConstructed = errors.New(
//	    "TrackOrderQuery must be created via NewTrackOrderQuery constructor",
//	)
//
//	type TrackOrderQuery struct {
//	    code  string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewTrackOrderQuery(code string) TrackOrderQuery {
//	    return TrackOrderQuery{code: code, guard: guard.NewConstructorGuard()}
//	}
//
//	func (q TrackOrderQuery) Validate() error {
//	    return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. Otherwise it returns validationError,
// or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
