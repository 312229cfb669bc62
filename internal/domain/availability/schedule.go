package availability

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidSlotTime  = errors.New("slot time must be HH:MM between 00:00 and 24:00")
	ErrInvalidSlotOrder = errors.New("slot start must be before slot end")
	ErrInvalidWeekday   = errors.New("invalid weekday key")
	ErrInvalidDateKey   = errors.New("override date must be YYYY-MM-DD")
)

const minutesPerDay = 24 * 60

// Slot is a half-open time-of-day range in minutes from midnight.
// A slot never crosses midnight.
type Slot struct {
	startMin int
	endMin   int
}

func NewSlot(start, end string) (Slot, error) {
	startMin, err := parseMinutes(start)
	if err != nil {
		return Slot{}, err
	}
	endMin, err := parseMinutes(end)
	if err != nil {
		return Slot{}, err
	}
	if startMin >= endMin {
		return Slot{}, ErrInvalidSlotOrder
	}
	return Slot{startMin: startMin, endMin: endMin}, nil
}

func (s Slot) StartMinutes() int { return s.startMin }
func (s Slot) EndMinutes() int   { return s.endMin }

func (s Slot) Start() string { return formatMinutes(s.startMin) }
func (s Slot) End() string   { return formatMinutes(s.endMin) }

// Contains reports whether the slot fully contains [fromMin, toMin).
func (s Slot) Contains(fromMin, toMin int) bool {
	return s.startMin <= fromMin && toMin <= s.endMin
}

func parseMinutes(v string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(v, "%d:%d", &h, &m); err != nil {
		return 0, ErrInvalidSlotTime
	}
	if h < 0 || m < 0 || m > 59 || h*60+m > minutesPerDay {
		return 0, ErrInvalidSlotTime
	}
	return h*60 + m, nil
}

func formatMinutes(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// Schedule is a recurring weekly availability pattern plus date-keyed
// overrides. An override replaces the base slots for its date entirely;
// an empty override list closes that date. A schedule with neither base
// slots nor overrides places no restriction at all.
type Schedule struct {
	base      map[time.Weekday][]Slot
	overrides map[string][]Slot
}

func NewSchedule(base map[time.Weekday][]Slot, overrides map[string][]Slot) (Schedule, error) {
	for wd := range base {
		if wd < time.Sunday || wd > time.Saturday {
			return Schedule{}, ErrInvalidWeekday
		}
	}
	for date := range overrides {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return Schedule{}, ErrInvalidDateKey
		}
	}
	return Schedule{base: base, overrides: overrides}, nil
}

func (s Schedule) IsEmpty() bool {
	return len(s.base) == 0 && len(s.overrides) == 0
}

// Covers reports whether a single applicable slot fully contains the
// window [start, end). The applicable slot list is the override for the
// window's start date when one exists, otherwise the base slots for its
// weekday. The comparison is done in minutes of day relative to the start
// date's midnight; a window spanning midnight can therefore never fit a
// slot, matching the daily-template semantics of the schedule.
func (s Schedule) Covers(start, end time.Time) bool {
	if s.IsEmpty() {
		return true
	}

	slots := s.slotsFor(start)
	if len(slots) == 0 {
		return false
	}

	fromMin := start.Hour()*60 + start.Minute()
	toMin := fromMin + ceilMinutes(end.Sub(start))

	for _, slot := range slots {
		if slot.Contains(fromMin, toMin) {
			return true
		}
	}
	return false
}

func (s Schedule) slotsFor(start time.Time) []Slot {
	dateKey := start.Format("2006-01-02")
	if override, ok := s.overrides[dateKey]; ok {
		// Empty override list means closed that day regardless of base.
		return override
	}
	return s.base[start.Weekday()]
}

func ceilMinutes(d time.Duration) int {
	min := int(d / time.Minute)
	if d%time.Minute != 0 {
		min++
	}
	return min
}
