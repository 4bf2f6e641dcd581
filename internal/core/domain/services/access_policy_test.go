package services_test

import (
	"testing"
	"time"

	"deliverytracker/internal/core/domain/model/kernel"
	"deliverytracker/internal/core/domain/model/order"
	"deliverytracker/internal/core/domain/model/user"
	"deliverytracker/internal/core/domain/services"
	"deliverytracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func restoreUser(t *testing.T, id int64, role user.Role) *user.User {
	t.Helper()
	u, err := user.RestoreUser(id, "user@example.com", "hash", "", role, now)
	require.NoError(t, err)
	return u
}

func TestAccessPolicy_AuthorizeOrderAccess(t *testing.T) {
	policy := services.NewAccessPolicy()
	owner := restoreUser(t, 1, user.RoleUser)
	stranger := restoreUser(t, 2, user.RoleUser)
	admin := restoreUser(t, 3, user.RoleAdmin)
	o, err := order.RestoreOrder(10, kernel.NewTrackingCode(), order.Created, owner.ID(), 20, 21, now, now)
	require.NoError(t, err)

	t.Run("should allow owner", func(t *testing.T) {
		require.NoError(t, policy.AuthorizeOrderAccess(owner, o))
	})

	t.Run("should allow admin who is not owner", func(t *testing.T) {
		require.NoError(t, policy.AuthorizeOrderAccess(admin, o))
	})

	t.Run("should forbid other users", func(t *testing.T) {
		err := policy.AuthorizeOrderAccess(stranger, o)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("should fail on unconstructed inputs", func(t *testing.T) {
		err := policy.AuthorizeOrderAccess(nil, nil)

		require.ErrorIs(t, err, user.ErrUserIsNotConstructed)
		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}

func TestAccessPolicy_AuthorizeOwner(t *testing.T) {
	policy := services.NewAccessPolicy()
	owner := restoreUser(t, 1, user.RoleUser)
	stranger := restoreUser(t, 2, user.RoleUser)
	admin := restoreUser(t, 3, user.RoleAdmin)

	t.Run("should allow owner and admin", func(t *testing.T) {
		require.NoError(t, policy.AuthorizeOwner(owner, 10, owner.ID()))
		require.NoError(t, policy.AuthorizeOwner(admin, 10, owner.ID()))
	})

	t.Run("should forbid other users and name the order", func(t *testing.T) {
		err := policy.AuthorizeOwner(stranger, 10, owner.ID())

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.Contains(t, err.Error(), "order 10")
	})

	t.Run("should fail on unconstructed caller", func(t *testing.T) {
		require.ErrorIs(t, policy.AuthorizeOwner(nil, 10, 1), user.ErrUserIsNotConstructed)
	})
}

func TestAccessPolicy_RequireAdmin(t *testing.T) {
	policy := services.NewAccessPolicy()

	require.NoError(t, policy.RequireAdmin(restoreUser(t, 1, user.RoleAdmin)))
	require.ErrorIs(t, policy.RequireAdmin(restoreUser(t, 2, user.RoleUser)), errs.ErrForbidden)
}

func TestAccessPolicy_ChangeRole(t *testing.T) {
	policy := services.NewAccessPolicy()

	t.Run("should promote another user", func(t *testing.T) {
		admin := restoreUser(t, 1, user.RoleAdmin)
		target := restoreUser(t, 2, user.RoleUser)

		require.NoError(t, policy.ChangeRole(admin, target, user.RoleAdmin))
		assert.True(t, target.IsAdmin())
	})

	t.Run("should demote another admin", func(t *testing.T) {
		admin := restoreUser(t, 1, user.RoleAdmin)
		target := restoreUser(t, 2, user.RoleAdmin)

		require.NoError(t, policy.ChangeRole(admin, target, user.RoleUser))
		assert.False(t, target.IsAdmin())
	})

	t.Run("should reject self demotion and keep role", func(t *testing.T) {
		admin := restoreUser(t, 1, user.RoleAdmin)

		err := policy.ChangeRole(admin, admin, user.RoleUser)

		require.ErrorIs(t, err, services.ErrSelfDemotion)
		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.True(t, admin.IsAdmin())
	})

	t.Run("should allow admin to reassert own admin role", func(t *testing.T) {
		admin := restoreUser(t, 1, user.RoleAdmin)

		require.NoError(t, policy.ChangeRole(admin, admin, user.RoleAdmin))
	})

	t.Run("should forbid non admin callers", func(t *testing.T) {
		caller := restoreUser(t, 1, user.RoleUser)
		target := restoreUser(t, 2, user.RoleUser)

		err := policy.ChangeRole(caller, target, user.RoleAdmin)

		require.ErrorIs(t, err, errs.ErrForbidden)
		assert.False(t, target.IsAdmin())
	})

	t.Run("should reject invalid role", func(t *testing.T) {
		admin := restoreUser(t, 1, user.RoleAdmin)
		target := restoreUser(t, 2, user.RoleUser)

		require.ErrorIs(t, policy.ChangeRole(admin, target, user.RoleUnknown), errs.ErrValueIsInvalid)
	})
}
