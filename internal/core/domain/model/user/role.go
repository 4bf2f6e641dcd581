package user

import (
	"fmt"

	"deliverytracker/internal/pkg/errs"
)

// Role is the authorization level of a user.
type Role int

const (
	// RoleUnknown marks an uninitialized or unparseable role.
	RoleUnknown Role = iota
	// RoleUser may manage only the orders they placed.
	RoleUser
	// RoleAdmin may read and update every order and manage roles.
	RoleAdmin
)

// ParseRole maps "user" or "admin" to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case RoleUser.String():
		return RoleUser, nil
	case RoleAdmin.String():
		return RoleAdmin, nil
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// Validate rejects RoleUnknown and out-of-range values.
func (r Role) Validate() error {
	switch r {
	case RoleUser, RoleAdmin:
		return nil
	case RoleUnknown:
	}
	return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", int(r)))
}

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	case RoleUnknown:
	}
	return "unknown"
}
