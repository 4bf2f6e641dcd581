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

// EnsureAdminCommandHandler makes sure at least one admin exists. It is
// idempotent: when any admin is present it writes nothing; otherwise it
// promotes the account holding the bootstrap email, or creates it.
type EnsureAdminCommandHandler struct {
	uowFactory UserUoWFactory
	hasher     ports.PasswordHasher
	clock      ports.Clock
	logger     *slog.Logger
}

// NewEnsureAdminCommandHandler creates a handler for admin bootstrap.
func NewEnsureAdminCommandHandler(
	uowFactory UserUoWFactory,
	hasher ports.PasswordHasher,
	clock ports.Clock,
	logger *slog.Logger,
) EnsureAdminCommandHandler {
	return EnsureAdminCommandHandler{
		uowFactory: uowFactory,
		hasher:     hasher,
		clock:      clock,
		logger:     logger.With("component", "ensure_admin"),
	}
}

// Handle returns the admin that satisfies the check and what was done to get it.
func (h *EnsureAdminCommandHandler) Handle(ctx context.Context, cmd EnsureAdminCommand) (*user.User, AdminOutcome, error) {
	if err := cmd.Validate(); err != nil {
		return nil, 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()

	admin, err := users.GetFirstAdmin(ctx)
	switch {
	case err == nil:
		h.logger.InfoContext(ctx, "admin already present", "user_id", admin.ID())
		return admin, AdminAlreadyPresent, nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, 0, err
	}

	existing, err := users.GetByEmail(ctx, cmd.Email())
	switch {
	case err == nil:
		if err = existing.ChangeRole(user.RoleAdmin); err != nil {
			return nil, 0, err
		}
		if err = users.Update(ctx, existing); err != nil {
			return nil, 0, err
		}
		if err = uow.Commit(ctx); err != nil {
			return nil, 0, err
		}
		h.logger.InfoContext(ctx, "user promoted to admin", "user_id", existing.ID())
		return existing, AdminPromoted, nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, 0, err
	}

	hash, err := h.hasher.Hash(cmd.Password())
	if err != nil {
		return nil, 0, err
	}

	created, err := user.NewUser(cmd.Email(), hash, cmd.FullName(), h.clock.Now())
	if err != nil {
		return nil, 0, err
	}
	if err = created.ChangeRole(user.RoleAdmin); err != nil {
		return nil, 0, err
	}
	if err = users.Add(ctx, created); err != nil {
		return nil, 0, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, 0, err
	}

	h.logger.InfoContext(ctx, "admin created", "user_id", created.ID(), "email", redact.Email(created.Email()))
	return created, AdminCreated, nil
}
