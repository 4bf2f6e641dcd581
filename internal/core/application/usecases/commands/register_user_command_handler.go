package commands

import (
	"context"
	"errors"
	"log/slog"

	"deliverytracker/internal/core/domain/model/user"
	"deliverytracker/internal/core/ports"
	"deliverytracker/internal/pkg/errs"
	"deliverytracker/internal/pkg/redact"
)

// RegisterUserCommandHandler creates a regular user account.
// A taken email fails with errs.ErrAlreadyExists.
type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	clock      ports.Clock
	logger     *slog.Logger
}

// NewRegisterUserCommandHandler creates a handler for user registration.
func NewRegisterUserCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	clock ports.Clock,
	logger *slog.Logger,
) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		clock:      clock,
		logger:     logger.With("component", "register_user"),
	}
}

// Handle hashes the password and stores the new user with RoleUser.
func (h *RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return nil, err
	}

	u, err := user.NewUser(cmd.Email(), hash, cmd.FullName(), h.clock.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, errs.NewRetryableStoreFailureError("register user", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.UserRepository().Add(ctx, u); err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			h.logger.InfoContext(ctx, "registration rejected", "email", redact.Email(u.Email()))
			return nil, err
		}
		return nil, errs.NewRetryableStoreFailureError("register user", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.NewRetryableStoreFailureError("register user", err)
	}

	h.logger.InfoContext(ctx, "user registered", "user_id", u.ID(), "email", redact.Email(u.Email()))
	return u, nil
}
