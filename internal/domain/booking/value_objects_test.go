//go:build unit

package booking_test

import (
	"testing"
	"time"

	"rentfleet/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var windowBase = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func window(t *testing.T, startOffset, endOffset time.Duration) booking.Window {
	t.Helper()
	w, err := booking.NewWindow(windowBase.Add(startOffset), windowBase.Add(endOffset))
	require.NoError(t, err)
	return w
}

func TestNewWindow(t *testing.T) {
	t.Run("valid window", func(t *testing.T) {
		w, err := booking.NewWindow(windowBase, windowBase.Add(2*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, windowBase, w.Start())
		assert.Equal(t, 2*time.Hour, w.Duration())
	})

	t.Run("start equals end", func(t *testing.T) {
		_, err := booking.NewWindow(windowBase, windowBase)
		assert.ErrorIs(t, err, booking.ErrInvalidWindow)
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := booking.NewWindow(windowBase.Add(time.Hour), windowBase)
		assert.ErrorIs(t, err, booking.ErrInvalidWindow)
	})
}

func TestWindowOverlaps(t *testing.T) {
	testCases := []struct {
		name     string
		a        booking.Window
		b        booking.Window
		overlaps bool
	}{
		{
			name:     "identical windows",
			a:        window(t, 0, 2*time.Hour),
			b:        window(t, 0, 2*time.Hour),
			overlaps: true,
		},
		{
			name:     "partial overlap",
			a:        window(t, 0, 2*time.Hour),
			b:        window(t, time.Hour, 3*time.Hour),
			overlaps: true,
		},
		{
			name:     "containment",
			a:        window(t, 0, 4*time.Hour),
			b:        window(t, time.Hour, 2*time.Hour),
			overlaps: true,
		},
		{
			name:     "touching end to start does not conflict",
			a:        window(t, 0, 2*time.Hour),
			b:        window(t, 2*time.Hour, 4*time.Hour),
			overlaps: false,
		},
		{
			name:     "touching start to end does not conflict",
			a:        window(t, 2*time.Hour, 4*time.Hour),
			b:        window(t, 0, 2*time.Hour),
			overlaps: false,
		},
		{
			name:     "disjoint windows",
			a:        window(t, 0, time.Hour),
			b:        window(t, 5*time.Hour, 6*time.Hour),
			overlaps: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlaps, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.overlaps, tc.b.Overlaps(tc.a), "overlap must be symmetric")
		})
	}
}

func TestWindowValidateNotPast(t *testing.T) {
	w := window(t, 0, 2*time.Hour)

	assert.NoError(t, w.ValidateNotPast(windowBase.Add(-time.Minute)))
	assert.NoError(t, w.ValidateNotPast(windowBase), "start exactly at now is allowed")
	assert.ErrorIs(t, w.ValidateNotPast(windowBase.Add(time.Minute)), booking.ErrWindowInPast)
}
