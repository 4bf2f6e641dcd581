package commands_test

import (
	"testing"

	"deliverytracker/internal/core/application/addressing"
	"deliverytracker/internal/core/application/usecases/commands"
	"deliverytracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRequest(t *testing.T, postalCode, number string) addressing.Request {
	t.Helper()
	req, err := addressing.NewRequest(postalCode, number, "")
	require.NoError(t, err)
	return req
}

func TestNewCreateOrderCommand(t *testing.T) {
	t.Run("should build a valid command", func(t *testing.T) {
		origin := mustRequest(t, "01310-100", "1000")
		destination := mustRequest(t, "20040002", "50")

		cmd, err := commands.NewCreateOrderCommand(7, origin, destination)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, int64(7), cmd.OwnerID())
		assert.Equal(t, "01310100", cmd.Origin().PostalCode().String())
		assert.Equal(t, "50", cmd.Destination().Number())
	})

	t.Run("should reject missing owner and unconstructed requests", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(0, addressing.Request{}, addressing.Request{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "owner id")
		assert.Contains(t, err.Error(), "origin")
		assert.Contains(t, err.Error(), "destination")
	})

	t.Run("zero value should not validate", func(t *testing.T) {
		require.ErrorIs(t, commands.CreateOrderCommand{}.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
