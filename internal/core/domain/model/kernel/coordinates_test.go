package kernel_test

import (
	"math"
	"testing"

	"deliverytracker/internal/core/domain/model/kernel"
	"deliverytracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoordinates(t *testing.T) {
	t.Run("should create coordinates within bounds", func(t *testing.T) {
		c, err := kernel.NewCoordinates(-23.5613, -46.6565)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.InDelta(t, -23.5613, c.Latitude(), 1e-9)
		assert.InDelta(t, -46.6565, c.Longitude(), 1e-9)
	})

	t.Run("should accept boundaries", func(t *testing.T) {
		_, err := kernel.NewCoordinates(kernel.LatitudeMax, kernel.LongitudeMin)

		require.NoError(t, err)
	})

	t.Run("should accept the origin point", func(t *testing.T) {
		c, err := kernel.NewCoordinates(0, 0)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
	})

	t.Run("should reject out of range latitude", func(t *testing.T) {
		_, err := kernel.NewCoordinates(90.1, 0)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "latitude")
	})

	t.Run("should join both errors", func(t *testing.T) {
		_, err := kernel.NewCoordinates(-91, 181)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude")
		assert.Contains(t, err.Error(), "longitude")
	})

	t.Run("should reject NaN", func(t *testing.T) {
		_, err := kernel.NewCoordinates(math.NaN(), 0)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestCoordinates_IsEqual(t *testing.T) {
	a, _ := kernel.NewCoordinates(1.5, 2.5)
	b, _ := kernel.NewCoordinates(1.5, 2.5)
	c, _ := kernel.NewCoordinates(1.5, 2.6)

	equal, err := a.IsEqual(b)
	require.NoError(t, err)
	assert.True(t, equal)

	equal, err = a.IsEqual(c)
	require.NoError(t, err)
	assert.False(t, equal)

	_, err = a.IsEqual(kernel.Coordinates{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
