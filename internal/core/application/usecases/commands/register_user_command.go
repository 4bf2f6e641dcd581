package commands

import (
	"errors"
	"strings"

	"deliverytracker/internal/pkg/errs"
	"deliverytracker/internal/pkg/guard"
)

// MaxPasswordLength caps the plaintext accepted for hashing.
const MaxPasswordLength = 128

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand carries a self-registration request. The password is
// plaintext here and is hashed by the handler.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	email    string
	password string
	fullName string

	guard guard.ConstructorGuard
}

// NewRegisterUserCommand checks presence of email and password.
// Email syntax is checked when the user aggregate is built.
func NewRegisterUserCommand(email, password, fullName string) (RegisterUserCommand, error) {
	cmd := RegisterUserCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setEmail(email),
		cmd.setPassword(password),
	); err != nil {
		return RegisterUserCommand{}, err
	}
	cmd.fullName = strings.TrimSpace(fullName)

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

// Email returns the requested login email.
func (c RegisterUserCommand) Email() string {
	return c.email
}

// Password returns the plaintext password.
func (c RegisterUserCommand) Password() string {
	return c.password
}

// FullName returns the optional display name.
func (c RegisterUserCommand) FullName() string {
	return c.fullName
}

func (c *RegisterUserCommand) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}

	c.email = email
	return nil
}

func (c *RegisterUserCommand) setPassword(password string) error {
	if password == "" {
		return errs.NewValueIsRequiredError("password")
	}
	if len(password) > MaxPasswordLength {
		return errs.NewValueIsOutOfRangeError("password length", len(password), 1, MaxPasswordLength)
	}

	c.password = password
	return nil
}
