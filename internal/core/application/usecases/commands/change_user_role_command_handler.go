package commands

import (
	"context"
	"log/slog"

	"deliverytracker/internal/core/domain/model/user"
	"deliverytracker/internal/core/domain/services"
	"deliverytracker/internal/pkg/errs"
)

// ChangeUserRoleCommandHandler lets an admin change another user's role.
// An admin demoting themself gets services.ErrSelfDemotion and nothing is written.
type ChangeUserRoleCommandHandler struct {
	uowFactory UserUoWFactory
	policy     services.AccessPolicy
	logger     *slog.Logger
}

// NewChangeUserRoleCommandHandler creates a handler for role changes.
func NewChangeUserRoleCommandHandler(uowFactory UserUoWFactory, logger *slog.Logger) ChangeUserRoleCommandHandler {
	return ChangeUserRoleCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewAccessPolicy(),
		logger:     logger.With("component", "change_user_role"),
	}
}

// Handle returns the updated target user.
func (h *ChangeUserRoleCommandHandler) Handle(ctx context.Context, cmd ChangeUserRoleCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.policy.RequireAdmin(cmd.Caller()); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, errs.NewRetryableStoreFailureError("change user role", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()
	target, err := users.Get(ctx, cmd.TargetID())
	if err != nil {
		return nil, storeFailure("change user role", err)
	}

	if err = h.policy.ChangeRole(cmd.Caller(), target, cmd.Role()); err != nil {
		return nil, err
	}

	if err = users.Update(ctx, target); err != nil {
		return nil, storeFailure("change user role", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, errs.NewRetryableStoreFailureError("change user role", err)
	}

	h.logger.InfoContext(ctx, "user role changed",
		"user_id", target.ID(),
		"role", target.Role().String(),
		"caller_id", cmd.Caller().ID(),
	)
	return target, nil
}
