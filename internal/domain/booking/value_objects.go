package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidWindow = errors.New("start time must be before end time")
	ErrWindowInPast  = errors.New("start time cannot be in the past")
)

// Window is a half-open time range [start, end).
type Window struct {
	start time.Time
	end   time.Time
}

func NewWindow(start, end time.Time) (Window, error) {
	if !start.Before(end) {
		return Window{}, ErrInvalidWindow
	}
	return Window{start: start, end: end}, nil
}

// ReconstructWindow rebuilds a window from storage without re-validating;
// the bookings table enforces start < end.
func ReconstructWindow(start, end time.Time) Window {
	return Window{start: start, end: end}
}

func (w Window) Start() time.Time { return w.start }
func (w Window) End() time.Time   { return w.end }

func (w Window) Duration() time.Duration {
	return w.end.Sub(w.start)
}

// Overlaps uses the half-open rule: touching endpoints do not conflict.
func (w Window) Overlaps(other Window) bool {
	return w.start.Before(other.end) && w.end.After(other.start)
}

func (w Window) ValidateNotPast(now time.Time) error {
	if w.start.Before(now) {
		return ErrWindowInPast
	}
	return nil
}

func (w Window) String() string {
	return fmt.Sprintf("[%s,%s)", w.start.Format(time.RFC3339), w.end.Format(time.RFC3339))
}
