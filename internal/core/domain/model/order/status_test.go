package order_test

import (
	"testing"

	"deliverytracker/internal/core/domain/model/order"
	"deliverytracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Table(t *testing.T) {
	testCases := []struct {
		status      order.Status
		wire        string
		label       string
		description string
		terminal    bool
	}{
		{order.Created, "created", "Order created", "", false},
		{order.InTransit, "in_transit", "Out for delivery", "order collected and out for delivery", false},
		{order.Delivered, "delivered", "Delivered", "order delivered successfully", true},
		{order.Canceled, "canceled", "Canceled", "order canceled", true},
	}

	for _, tc := range testCases {
		t.Run(tc.wire, func(t *testing.T) {
			require.NoError(t, tc.status.Validate())
			assert.Equal(t, tc.wire, tc.status.String())
			assert.Equal(t, tc.label, tc.status.Label())
			assert.Equal(t, tc.terminal, tc.status.IsTerminal())

			description, ok := tc.status.DefaultDescription()
			assert.Equal(t, tc.description != "", ok)
			assert.Equal(t, tc.description, description)

			parsed, err := order.ParseStatus(tc.wire)
			require.NoError(t, err)
			assert.Equal(t, tc.status, parsed)
		})
	}
}

func TestStatus_Invalid(t *testing.T) {
	t.Run("should reject unknown status", func(t *testing.T) {
		require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
		assert.Equal(t, "unknown", order.Unknown.String())
		assert.False(t, order.Unknown.IsTerminal())
	})

	t.Run("should reject out of range value", func(t *testing.T) {
		require.ErrorIs(t, order.Status(42).Validate(), errs.ErrValueIsInvalid)
	})

	t.Run("should reject unparseable text", func(t *testing.T) {
		for _, raw := range []string{"", "CREATED", "in transit", "lost"} {
			s, err := order.ParseStatus(raw)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.Equal(t, order.Unknown, s)
		}
	})
}

func TestStatuses(t *testing.T) {
	assert.Equal(t,
		[]order.Status{order.Created, order.InTransit, order.Delivered, order.Canceled},
		order.Statuses())
}
