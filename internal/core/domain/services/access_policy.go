package services

import (
	"errors"
	"fmt"

	"deliverytracker/internal/core/domain/model/order"
	"deliverytracker/internal/core/domain/model/user"
	"deliverytracker/internal/pkg/errs"
)

// ErrSelfDemotion is returned when an admin tries to drop their own admin role.
// It matches errs.ErrForbidden.
var ErrSelfDemotion = fmt.Errorf("%w: admins cannot remove their own admin role", errs.ErrForbidden)

// AccessPolicy enforces owner-or-admin access to orders and admin-only user management.
//
// Business rules:
//   - An order may be read or updated by its owner or by any admin
//   - Listing every order, listing users and changing roles require RoleAdmin
//   - An admin may not strip their own admin role, so the last admin cannot lock everyone out
type AccessPolicy struct{}

// NewAccessPolicy creates an AccessPolicy.
func NewAccessPolicy() AccessPolicy {
	return AccessPolicy{}
}

// AuthorizeOrderAccess allows the order's owner and admins.
func (p AccessPolicy) AuthorizeOrderAccess(caller *user.User, o *order.Order) error {
	if err := errors.Join(caller.Validate(), o.Validate()); err != nil {
		return err
	}
	return p.AuthorizeOwner(caller, o.ID(), o.OwnerID())
}

// AuthorizeOwner is AuthorizeOrderAccess for reads that only carry the
// order and owner identities.
func (AccessPolicy) AuthorizeOwner(caller *user.User, orderID, ownerID int64) error {
	if err := caller.Validate(); err != nil {
		return err
	}

	if caller.IsAdmin() || caller.ID() == ownerID {
		return nil
	}

	return fmt.Errorf("%w: user %d may not access order %d", errs.ErrForbidden, caller.ID(), orderID)
}

// RequireAdmin allows admins only.
func (AccessPolicy) RequireAdmin(caller *user.User) error {
	if err := caller.Validate(); err != nil {
		return err
	}

	if !caller.IsAdmin() {
		return fmt.Errorf("%w: admin role required", errs.ErrForbidden)
	}

	return nil
}

// ChangeRole authorizes caller to set role on target and applies it.
// The target is left unchanged when the change is rejected.
func (p AccessPolicy) ChangeRole(caller, target *user.User, role user.Role) error {
	if err := p.RequireAdmin(caller); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	if caller.ID() == target.ID() && role != user.RoleAdmin {
		return ErrSelfDemotion
	}

	return target.ChangeRole(role)
}
