package ports

import (
	"context"

	"deliverytracker/internal/core/domain/model/user"
)

// UserRepository defines the persistence contract for user accounts.
type UserRepository interface {
	// Add inserts a transient user and assigns its identity.
	// Returns errs.AlreadyExistsError when the email is taken.
	Add(ctx context.Context, u *user.User) error

	// Update writes the mutable fields: role, password hash and full name.
	Update(ctx context.Context, u *user.User) error

	// Get retrieves a user by identity.
	Get(ctx context.Context, id int64) (*user.User, error)

	// GetByEmail retrieves a user by normalized email.
	GetByEmail(ctx context.Context, email string) (*user.User, error)

	// GetFirstAdmin retrieves the admin with the lowest identity.
	// Returns errs.ObjectNotFoundError when no admin exists.
	GetFirstAdmin(ctx context.Context) (*user.User, error)
}
