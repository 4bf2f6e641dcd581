package queries

import (
	"errors"

	"deliverytracker/internal/pkg/errs"
	"deliverytracker/internal/pkg/guard"
)

var (
	ErrGetUserQueryIsNotConstructed = errors.New(
		"GetUserQuery must be created via NewGetUserQuery constructor",
	)
	ErrListUsersQueryIsNotConstructed = errors.New(
		"ListUsersQuery must be created via NewListUsersQuery constructor",
	)
)

// GetUserQuery reads one user profile.
type GetUserQuery struct {
	userID int64

	guard guard.ConstructorGuard
}

// NewGetUserQuery validates the user identity.
func NewGetUserQuery(userID int64) (GetUserQuery, error) {
	if userID <= 0 {
		return GetUserQuery{}, errs.NewValueIsInvalidError("user id")
	}
	return GetUserQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUserQuery) Validate() error {
	return q.guard.Validate(ErrGetUserQueryIsNotConstructed)
}

// UserID returns the requested user.
func (q GetUserQuery) UserID() int64 { return q.userID }

// ListUsersQuery lists every user by identity. Callers must be admins.
type ListUsersQuery struct {
	guard guard.ConstructorGuard
}

// NewListUsersQuery creates the query.
func NewListUsersQuery() ListUsersQuery {
	return ListUsersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListUsersQuery) Validate() error {
	return q.guard.Validate(ErrListUsersQueryIsNotConstructed)
}
