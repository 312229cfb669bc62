//go:build unit

package booking_test

import (
	"testing"
	"time"

	"rentfleet/internal/domain/booking"
	"rentfleet/internal/domain/user"
	"rentfleet/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	t.Run("terminal statuses", func(t *testing.T) {
		assert.False(t, booking.StatusPendingRenterApproval.IsTerminal())
		assert.False(t, booking.StatusApprovedByRenter.IsTerminal())
		assert.False(t, booking.StatusSentBackToClient.IsTerminal())
		assert.True(t, booking.StatusRejectedByRenter.IsTerminal())
		assert.True(t, booking.StatusCanceledByClient.IsTerminal())
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, err := booking.NewStatus("on_hold")
		assert.ErrorIs(t, err, booking.ErrInvalidStatus)
	})
}

func TestCanTransition(t *testing.T) {
	allStatuses := []booking.Status{
		booking.StatusPendingRenterApproval,
		booking.StatusApprovedByRenter,
		booking.StatusRejectedByRenter,
		booking.StatusSentBackToClient,
		booking.StatusCanceledByClient,
	}

	type move struct {
		current booking.Status
		target  booking.Status
	}

	allowed := map[user.Role][]move{
		user.RoleRenter: {
			{booking.StatusPendingRenterApproval, booking.StatusApprovedByRenter},
			{booking.StatusPendingRenterApproval, booking.StatusRejectedByRenter},
			{booking.StatusPendingRenterApproval, booking.StatusSentBackToClient},
			{booking.StatusSentBackToClient, booking.StatusApprovedByRenter},
			{booking.StatusSentBackToClient, booking.StatusRejectedByRenter},
		},
		user.RoleClient: {
			{booking.StatusPendingRenterApproval, booking.StatusCanceledByClient},
			{booking.StatusSentBackToClient, booking.StatusPendingRenterApproval},
			{booking.StatusSentBackToClient, booking.StatusCanceledByClient},
			{booking.StatusApprovedByRenter, booking.StatusCanceledByClient},
		},
		user.RoleAdmin: {},
	}

	isAllowed := func(role user.Role, current, target booking.Status) bool {
		for _, m := range allowed[role] {
			if m.current == current && m.target == target {
				return true
			}
		}
		return false
	}

	// Exercise every role x current x target combination so any table
	// change shows up as a diff here.
	for role := range allowed {
		for _, current := range allStatuses {
			for _, target := range allStatuses {
				expected := isAllowed(role, current, target)
				actual := booking.CanTransition(current, target, role)
				assert.Equal(t, expected, actual,
					"role=%s current=%s target=%s", role, current, target)
			}
		}
	}
}

func TestBookingTransition(t *testing.T) {
	t.Run("legal transition updates status", func(t *testing.T) {
		bk := builder.NewBookingBuilder().BuildDomain()

		err := bk.Transition(booking.StatusApprovedByRenter, user.RoleRenter)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusApprovedByRenter, bk.Status())
	})

	t.Run("illegal transition names the offending move", func(t *testing.T) {
		bk := builder.NewBookingBuilder().BuildDomain()

		err := bk.Transition(booking.StatusApprovedByRenter, user.RoleClient)
		require.Error(t, err)

		var transitionErr *booking.TransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, user.RoleClient, transitionErr.Role)
		assert.Equal(t, booking.StatusPendingRenterApproval, transitionErr.Current)
		assert.Equal(t, booking.StatusApprovedByRenter, transitionErr.Target)
		assert.Equal(t, booking.StatusPendingRenterApproval, bk.Status(), "status must not change on failure")
	})

	t.Run("terminal statuses accept no further moves", func(t *testing.T) {
		bk := builder.NewBookingBuilder().WithStatus(booking.StatusRejectedByRenter).BuildDomain()

		for _, role := range []user.Role{user.RoleClient, user.RoleRenter, user.RoleAdmin} {
			err := bk.Transition(booking.StatusPendingRenterApproval, role)
			assert.Error(t, err, "role %s must not revive a rejected booking", role)
		}
	})
}

func TestBookingAttachPayment(t *testing.T) {
	bk := builder.NewBookingBuilder().BuildDomain()
	require.Nil(t, bk.PaymentID())

	paymentID := uuid.New()
	bk.AttachPayment(paymentID)

	require.NotNil(t, bk.PaymentID())
	assert.Equal(t, paymentID, *bk.PaymentID())
}

func TestNewMessage(t *testing.T) {
	bookingID := uuid.New()
	senderID := uuid.New()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("valid message", func(t *testing.T) {
		msg, err := booking.NewMessage(bookingID, senderID, "Is Friday delivery possible?", now)
		require.NoError(t, err)
		assert.Equal(t, bookingID, msg.BookingID())
		assert.Equal(t, senderID, msg.SenderID())
		assert.Equal(t, now, msg.CreatedAt())
		assert.NotEqual(t, uuid.Nil, msg.ID())
	})

	t.Run("body is trimmed", func(t *testing.T) {
		msg, err := booking.NewMessage(bookingID, senderID, "  hello  ", now)
		require.NoError(t, err)
		assert.Equal(t, "hello", msg.Body())
	})

	t.Run("empty body", func(t *testing.T) {
		_, err := booking.NewMessage(bookingID, senderID, "   ", now)
		assert.ErrorIs(t, err, booking.ErrEmptyMessage)
	})

	t.Run("body at maximum length", func(t *testing.T) {
		body := make([]byte, booking.MaxMessageLength)
		for i := range body {
			body[i] = 'a'
		}
		_, err := booking.NewMessage(bookingID, senderID, string(body), now)
		assert.NoError(t, err)
	})

	t.Run("body exceeds maximum length", func(t *testing.T) {
		body := make([]byte, booking.MaxMessageLength+1)
		for i := range body {
			body[i] = 'a'
		}
		_, err := booking.NewMessage(bookingID, senderID, string(body), now)
		assert.ErrorIs(t, err, booking.ErrMessageTooLong)
	})
}
