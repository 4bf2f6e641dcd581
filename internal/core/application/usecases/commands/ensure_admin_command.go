package commands

import (
	"errors"
)

var ErrEnsureAdminCommandIsNotConstructed = errors.New(
	"EnsureAdminCommand must be created via NewEnsureAdminCommand constructor",
)

// AdminOutcome reports what EnsureAdminCommandHandler did.
type AdminOutcome int

const (
	// AdminAlreadyPresent means an admin existed and nothing was written.
	AdminAlreadyPresent AdminOutcome = iota + 1
	// AdminPromoted means the account with the bootstrap email became admin.
	AdminPromoted
	// AdminCreated means a new admin account was stored.
	AdminCreated
)

func (o AdminOutcome) String() string {
	switch o {
	case AdminAlreadyPresent:
		return "already present"
	case AdminPromoted:
		return "promoted"
	case AdminCreated:
		return "created"
	default:
		return "unknown"
	}
}

// EnsureAdminCommand carries the bootstrap admin account.
// It reuses the registration rules for email and password.
type EnsureAdminCommand struct {
	account RegisterUserCommand
}

// NewEnsureAdminCommand validates the bootstrap account.
func NewEnsureAdminCommand(email, password, fullName string) (EnsureAdminCommand, error) {
	account, err := NewRegisterUserCommand(email, password, fullName)
	if err != nil {
		return EnsureAdminCommand{}, err
	}
	return EnsureAdminCommand{account: account}, nil
}

// Validate ensures the command was created through the constructor.
func (c EnsureAdminCommand) Validate() error {
	if c.account.Validate() != nil {
		return ErrEnsureAdminCommandIsNotConstructed
	}
	return nil
}

// Email returns the bootstrap email.
func (c EnsureAdminCommand) Email() string { return c.account.Email() }

// Password returns the bootstrap plaintext password.
func (c EnsureAdminCommand) Password() string { return c.account.Password() }

// FullName returns the bootstrap display name.
func (c EnsureAdminCommand) FullName() string { return c.account.FullName() }
