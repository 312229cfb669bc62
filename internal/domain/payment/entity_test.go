//go:build unit

package payment_test

import (
	"testing"

	"rentfleet/internal/domain/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingPayment(t *testing.T) *payment.Payment {
	t.Helper()
	p, err := payment.NewPayment(uuid.New(), 30000)
	require.NoError(t, err)
	return p
}

func TestNewPayment(t *testing.T) {
	t.Run("starts pending", func(t *testing.T) {
		bookingID := uuid.New()
		p, err := payment.NewPayment(bookingID, 30000)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, p.ID())
		assert.Equal(t, bookingID, p.BookingID())
		assert.Equal(t, int64(30000), p.AmountCents())
		assert.Equal(t, payment.StatusPending, p.Status())
	})

	t.Run("zero amount is allowed", func(t *testing.T) {
		_, err := payment.NewPayment(uuid.New(), 0)
		assert.NoError(t, err)
	})

	t.Run("negative amount", func(t *testing.T) {
		_, err := payment.NewPayment(uuid.New(), -1)
		assert.ErrorIs(t, err, payment.ErrNegativeAmount)
	})
}

func TestPaymentStateMachine(t *testing.T) {
	t.Run("complete from pending", func(t *testing.T) {
		p := newPendingPayment(t)
		require.NoError(t, p.Complete())
		assert.Equal(t, payment.StatusCompleted, p.Status())
	})

	t.Run("fail from pending", func(t *testing.T) {
		p := newPendingPayment(t)
		require.NoError(t, p.Fail())
		assert.Equal(t, payment.StatusFailed, p.Status())
	})

	t.Run("refund requires completed", func(t *testing.T) {
		p := newPendingPayment(t)

		err := p.Refund()
		var stateErr *payment.StateError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, payment.StatusPending, stateErr.Current)
		assert.Equal(t, payment.StatusRefunded, stateErr.Target)

		require.NoError(t, p.Complete())
		require.NoError(t, p.Refund())
		assert.Equal(t, payment.StatusRefunded, p.Status())
	})

	t.Run("complete is not repeatable", func(t *testing.T) {
		p := newPendingPayment(t)
		require.NoError(t, p.Complete())

		err := p.Complete()
		var stateErr *payment.StateError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, payment.StatusCompleted, stateErr.Current)
	})

	t.Run("refunded is terminal", func(t *testing.T) {
		p := newPendingPayment(t)
		require.NoError(t, p.Complete())
		require.NoError(t, p.Refund())

		assert.Error(t, p.Complete())
		assert.Error(t, p.Fail())
		assert.Error(t, p.Refund())
	})
}
