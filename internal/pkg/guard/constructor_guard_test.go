package guard_test

import (
	"errors"
	"testing"

	"deliverytracker/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed guard passes with custom and nil errors", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value guard returns the provided error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("entity not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero value guard falls back to default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	type trackingCode struct {
		value string
		guard guard.ConstructorGuard
	}
	errNotConstructed := errors.New("trackingCode must be created via newTrackingCode")

	newTrackingCode := func(v string) (trackingCode, error) {
		if v == "" {
			return trackingCode{}, errors.New("value is required")
		}
		return trackingCode{value: v, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("should validate value built by constructor", func(t *testing.T) {
		code, err := newTrackingCode("DT-0A1B2C3D")

		require.NoError(t, err)
		require.NoError(t, code.guard.Validate(errNotConstructed))
	})

	t.Run("should reject value returned on constructor failure", func(t *testing.T) {
		code, err := newTrackingCode("")

		require.Error(t, err)
		assert.Equal(t, errNotConstructed, code.guard.Validate(errNotConstructed))
	})

	t.Run("should reject struct literal", func(t *testing.T) {
		code := trackingCode{value: "DT-0A1B2C3D"}

		assert.Equal(t, errNotConstructed, code.guard.Validate(errNotConstructed))
	})
}
