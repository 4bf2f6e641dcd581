package order_test

import (
	"testing"
	"time"

	"deliverytracker/internal/core/domain/model/kernel"
	"deliverytracker/internal/core/domain/model/order"
	"deliverytracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewTrackingCode(), 1, 10, 11, createdAt)
	require.NoError(t, err)
	require.NoError(t, o.AssignID(100))
	return o
}

func TestNewOrder(t *testing.T) {
	code := kernel.NewTrackingCode()

	t.Run("should create order in created status with one event", func(t *testing.T) {
		o, err := order.NewOrder(code, 1, 10, 11, createdAt)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Zero(t, o.ID())
		assert.True(t, o.TrackingCode().IsEqual(code))
		assert.Equal(t, order.Created, o.Status())
		assert.Equal(t, int64(1), o.OwnerID())
		assert.Equal(t, int64(10), o.OriginAddressID())
		assert.Equal(t, int64(11), o.DestinationAddressID())
		assert.Equal(t, createdAt, o.CreatedAt())
		assert.Equal(t, createdAt, o.UpdatedAt())

		events := o.PendingEvents()
		require.Len(t, events, 1)
		assert.Equal(t, order.Created, events[0].Status())
		assert.Equal(t, "Order created", events[0].Label())
		assert.Equal(t, "order registered in system", events[0].Description())
		assert.Equal(t, createdAt, events[0].CreatedAt())
	})

	t.Run("should convert timestamps to UTC", func(t *testing.T) {
		local := createdAt.In(time.FixedZone("BRT", -3*60*60))

		o, err := order.NewOrder(code, 1, 10, 11, local)

		require.NoError(t, err)
		assert.Equal(t, time.UTC, o.CreatedAt().Location())
	})

	t.Run("should join validation errors", func(t *testing.T) {
		o, err := order.NewOrder(kernel.TrackingCode{}, 0, 0, -1, time.Time{})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "tracking code")
		assert.Contains(t, err.Error(), "owner id")
		assert.Contains(t, err.Error(), "origin address id")
		assert.Contains(t, err.Error(), "destination address id")
		assert.Contains(t, err.Error(), "created at")
	})

	t.Run("should reject the same address as origin and destination", func(t *testing.T) {
		_, err := order.NewOrder(code, 1, 10, 10, createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRestoreOrder(t *testing.T) {
	code := kernel.NewTrackingCode()
	updatedAt := createdAt.Add(time.Hour)

	t.Run("should restore without pending events", func(t *testing.T) {
		o, err := order.RestoreOrder(5, code, order.InTransit, 1, 10, 11, createdAt, updatedAt)

		require.NoError(t, err)
		assert.Equal(t, int64(5), o.ID())
		assert.Equal(t, order.InTransit, o.Status())
		assert.Equal(t, updatedAt, o.UpdatedAt())
		assert.Empty(t, o.PendingEvents())
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(5, code, order.Unknown, 1, 10, 11, createdAt, updatedAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject update before creation", func(t *testing.T) {
		_, err := order.RestoreOrder(5, code, order.Created, 1, 10, 11, updatedAt, createdAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("should follow the forward path and append events", func(t *testing.T) {
		o := newOrder(t)
		o.ClearPendingEvents()
		inTransitAt := createdAt.Add(time.Hour)
		deliveredAt := createdAt.Add(2 * time.Hour)

		require.NoError(t, o.ChangeStatus(order.InTransit, inTransitAt))
		require.NoError(t, o.ChangeStatus(order.Delivered, deliveredAt))

		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, deliveredAt, o.UpdatedAt())
		events := o.PendingEvents()
		require.Len(t, events, 2)
		assert.Equal(t, order.InTransit, events[0].Status())
		assert.Equal(t, "order collected and out for delivery", events[0].Description())
		assert.Equal(t, order.Delivered, events[1].Status())
		assert.Equal(t, "order delivered successfully", events[1].Description())
		assert.Equal(t, o.Status(), events[len(events)-1].Status())
	})

	t.Run("should allow skipping straight to delivered", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.ChangeStatus(order.Delivered, createdAt.Add(time.Minute)))

		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("should record no description for created target", func(t *testing.T) {
		o := newOrder(t)
		o.ClearPendingEvents()

		require.NoError(t, o.ChangeStatus(order.Created, createdAt.Add(time.Minute)))

		events := o.PendingEvents()
		require.Len(t, events, 1)
		assert.Empty(t, events[0].Description())
	})

	for _, terminal := range []order.Status{order.Delivered, order.Canceled} {
		for _, target := range order.Statuses() {
			t.Run("should reject "+terminal.String()+" to "+target.String(), func(t *testing.T) {
				o := newOrder(t)
				require.NoError(t, o.ChangeStatus(terminal, createdAt.Add(time.Minute)))
				o.ClearPendingEvents()
				updatedAt := o.UpdatedAt()

				err := o.ChangeStatus(target, createdAt.Add(time.Hour))

				require.ErrorIs(t, err, order.ErrTerminalStateViolation)
				var violation *order.TerminalStateViolationError
				require.ErrorAs(t, err, &violation)
				assert.Equal(t, int64(100), violation.OrderID)
				assert.Equal(t, terminal, violation.Current)
				assert.Equal(t, terminal, o.Status())
				assert.Equal(t, updatedAt, o.UpdatedAt())
				assert.Empty(t, o.PendingEvents())
			})
		}
	}

	t.Run("should reject invalid target without side effects", func(t *testing.T) {
		o := newOrder(t)
		o.ClearPendingEvents()

		err := o.ChangeStatus(order.Unknown, createdAt.Add(time.Minute))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Created, o.Status())
		assert.Empty(t, o.PendingEvents())
	})
}

func TestOrder_AssignID(t *testing.T) {
	o := newOrder(t)

	require.ErrorIs(t, o.AssignID(101), order.ErrIdentityAlreadyAssigned)
	assert.Equal(t, int64(100), o.ID())
}

func TestOrder_Validate(t *testing.T) {
	var o *order.Order

	require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	require.ErrorIs(t, (&order.Order{}).Validate(), order.ErrOrderIsNotConstructed)
}
