// Package user holds the User aggregate: an account that owns orders and
// carries a role used by access control.
package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"deliverytracker/internal/pkg/errs"
)

const (
	maxEmailLength    = 255
	maxFullNameLength = 255
)

var (
	// ErrUserIsNotConstructed is returned by Validate on a User built without a constructor.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

	// ErrIdentityAlreadyAssigned is returned when a persisted User receives a second identity.
	ErrIdentityAlreadyAssigned = errors.New("user identity is already assigned")
)

// User is an account. The password hash is opaque to the domain.
type User struct {
	id           int64
	email        string
	passwordHash string
	fullName     string
	role         Role
	createdAt    time.Time

	isConstructed bool
}

// NewUser creates a transient account with RoleUser.
func NewUser(email, passwordHash, fullName string, now time.Time) (*User, error) {
	u := &User{role: RoleUser, isConstructed: true}

	if err := errors.Join(
		u.setEmail(email),
		u.setPasswordHash(passwordHash),
		u.setFullName(fullName),
		u.setCreatedAt(now),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// RestoreUser rebuilds a persisted account.
func RestoreUser(id int64, email, passwordHash, fullName string, role Role, createdAt time.Time) (*User, error) {
	u := &User{isConstructed: true}

	if err := errors.Join(
		u.AssignID(id),
		u.setEmail(email),
		u.setPasswordHash(passwordHash),
		u.setFullName(fullName),
		u.setRole(role),
		u.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return u, nil
}

// NormalizeEmail trims and lower-cases an email address so that uniqueness
// checks and logins are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate reports whether the User was built by a constructor.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// AssignID records the identity generated by the store. It may be called once.
func (u *User) AssignID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("user id", id, 1, "max int64")
	}
	if u.id != 0 {
		return ErrIdentityAlreadyAssigned
	}
	u.id = id
	return nil
}

// ChangeRole sets a new role. Authorization of the change is decided by the caller.
func (u *User) ChangeRole(role Role) error {
	return u.setRole(role)
}

// ChangePasswordHash replaces the stored hash.
func (u *User) ChangePasswordHash(passwordHash string) error {
	return u.setPasswordHash(passwordHash)
}

// IsAdmin reports whether the user holds RoleAdmin.
func (u *User) IsAdmin() bool { return u.role == RoleAdmin }

// ID returns the store identity, or 0 for a transient user.
func (u *User) ID() int64 { return u.id }

// Email returns the normalized email address.
func (u *User) Email() string { return u.email }

// PasswordHash returns the encoded password hash.
func (u *User) PasswordHash() string { return u.passwordHash }

// FullName returns the optional display name, or "".
func (u *User) FullName() string { return u.fullName }

// Role returns the current role.
func (u *User) Role() Role { return u.role }

// CreatedAt returns the registration time in UTC.
func (u *User) CreatedAt() time.Time { return u.createdAt }

func (u *User) setEmail(email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if len(email) > maxEmailLength {
		return errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("longer than %d characters", maxEmailLength))
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errs.NewValueIsInvalidErrorWithCause("email", errors.New("not a valid address"))
	}
	u.email = email
	return nil
}

func (u *User) setPasswordHash(passwordHash string) error {
	if passwordHash == "" {
		return errs.NewValueIsRequiredError("password hash")
	}
	u.passwordHash = passwordHash
	return nil
}

func (u *User) setFullName(fullName string) error {
	fullName = strings.TrimSpace(fullName)
	if len(fullName) > maxFullNameLength {
		return errs.NewValueIsInvalidErrorWithCause("full name", fmt.Errorf("longer than %d characters", maxFullNameLength))
	}
	u.fullName = fullName
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}

func (u *User) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	u.createdAt = createdAt.UTC()
	return nil
}
