// Package identity resolves callers from bearer credentials and exchanges
// email and password for a credential.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"deliverytracker/internal/core/domain/model/user"
	"deliverytracker/internal/core/ports"
	"deliverytracker/internal/pkg/errs"
	"deliverytracker/internal/pkg/redact"
)

// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password.
// It matches errs.ErrUnauthenticated.
var ErrInvalidCredentials = fmt.Errorf("%w: incorrect email or password", errs.ErrUnauthenticated)

// UserFinder loads accounts outside of a transaction.
type UserFinder interface {
	Get(ctx context.Context, id int64) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// Authenticator verifies bearer tokens and passwords.
type Authenticator struct {
	users  UserFinder
	tokens ports.TokenService
	hasher ports.PasswordHasher
	logger *slog.Logger
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(
	users UserFinder,
	tokens ports.TokenService,
	hasher ports.PasswordHasher,
	logger *slog.Logger,
) *Authenticator {
	return &Authenticator{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		logger: logger.With("component", "authenticator"),
	}
}

// Authenticate maps a bearer token to its user. A missing, malformed or
// expired token, or one naming a deleted user, yields errs.ErrUnauthenticated.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*user.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: missing bearer token", errs.ErrUnauthenticated)
	}

	userID, err := a.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, errs.ErrUnauthenticated) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", errs.ErrUnauthenticated, err)
	}

	u, err := a.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: unknown subject", errs.ErrUnauthenticated)
		}
		return nil, err
	}

	return u, nil
}

// Login checks the password of the account registered under email and issues a token.
func (a *Authenticator) Login(ctx context.Context, email, password string) (ports.AccessToken, *user.User, error) {
	u, err := a.users.GetByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			a.logger.InfoContext(ctx, "Login rejected", "reason", "unknown email", "email", redact.Email(email))
			return ports.AccessToken{}, nil, ErrInvalidCredentials
		}
		return ports.AccessToken{}, nil, err
	}

	ok, err := a.hasher.Verify(password, u.PasswordHash())
	if err != nil {
		return ports.AccessToken{}, nil, err
	}
	if !ok {
		a.logger.InfoContext(ctx, "Login rejected", "reason", "wrong password", "user_id", u.ID())
		return ports.AccessToken{}, nil, ErrInvalidCredentials
	}

	token, err := a.tokens.Issue(u.ID())
	if err != nil {
		return ports.AccessToken{}, nil, err
	}

	return token, u, nil
}
