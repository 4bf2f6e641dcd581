package commands

import (
	"errors"

	"deliverytracker/internal/core/domain/model/user"
	"deliverytracker/internal/pkg/errs"
	"deliverytracker/internal/pkg/guard"
)

var ErrChangeUserRoleCommandIsNotConstructed = errors.New(
	"ChangeUserRoleCommand must be created via NewChangeUserRoleCommand constructor",
)

// ChangeUserRoleCommand asks to set the role of the target user.
type ChangeUserRoleCommand struct { //nolint:recvcheck //using for validation
	caller   *user.User
	targetID int64
	role     user.Role

	guard guard.ConstructorGuard
}

// NewChangeUserRoleCommand validates the caller, the target identity and the role.
func NewChangeUserRoleCommand(caller *user.User, targetID int64, role user.Role) (ChangeUserRoleCommand, error) {
	cmd := ChangeUserRoleCommand{
		guard: guard.NewConstructorGuard(),
	}

	var callerErr error
	if caller == nil {
		callerErr = errs.NewValueIsRequiredError("caller")
	} else {
		callerErr = caller.Validate()
	}

	var targetErr error
	if targetID <= 0 {
		targetErr = errs.NewValueIsInvalidError("user id")
	}

	if err := errors.Join(callerErr, targetErr, role.Validate()); err != nil {
		return ChangeUserRoleCommand{}, err
	}

	cmd.caller = caller
	cmd.targetID = targetID
	cmd.role = role
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeUserRoleCommand) Validate() error {
	return c.guard.Validate(ErrChangeUserRoleCommandIsNotConstructed)
}

// Caller returns the authenticated user asking for the change.
func (c ChangeUserRoleCommand) Caller() *user.User { return c.caller }

// TargetID returns the user whose role changes.
func (c ChangeUserRoleCommand) TargetID() int64 { return c.targetID }

// Role returns the requested role.
func (c ChangeUserRoleCommand) Role() user.Role { return c.role }
