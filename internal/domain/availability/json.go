package availability

import (
	"encoding/json"
	"time"
)

// Wire shape of the persisted jsonb column and the API payloads:
//
//	{"base":{"mon":[{"start":"09:00","end":"17:00"}]},"overrides":{"2026-09-01":[]}}
type scheduleJSON struct {
	Base      map[string][]slotJSON `json:"base,omitempty"`
	Overrides map[string][]slotJSON `json:"overrides,omitempty"`
}

type slotJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

var weekdayKeys = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "sun",
	time.Monday:    "mon",
	time.Tuesday:   "tue",
	time.Wednesday: "wed",
	time.Thursday:  "thu",
	time.Friday:    "fri",
	time.Saturday:  "sat",
}

func (s Schedule) MarshalJSON() ([]byte, error) {
	out := scheduleJSON{}
	if len(s.base) > 0 {
		out.Base = make(map[string][]slotJSON, len(s.base))
		for wd, slots := range s.base {
			out.Base[weekdayNames[wd]] = toSlotJSON(slots)
		}
	}
	if len(s.overrides) > 0 {
		out.Overrides = make(map[string][]slotJSON, len(s.overrides))
		for date, slots := range s.overrides {
			out.Overrides[date] = toSlotJSON(slots)
		}
	}
	return json.Marshal(out)
}

func (s *Schedule) UnmarshalJSON(data []byte) error {
	var wire scheduleJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	var base map[time.Weekday][]Slot
	if len(wire.Base) > 0 {
		base = make(map[time.Weekday][]Slot, len(wire.Base))
		for key, slots := range wire.Base {
			wd, ok := weekdayKeys[key]
			if !ok {
				return ErrInvalidWeekday
			}
			parsed, err := fromSlotJSON(slots)
			if err != nil {
				return err
			}
			base[wd] = parsed
		}
	}

	var overrides map[string][]Slot
	if len(wire.Overrides) > 0 {
		overrides = make(map[string][]Slot, len(wire.Overrides))
		for date, slots := range wire.Overrides {
			parsed, err := fromSlotJSON(slots)
			if err != nil {
				return err
			}
			overrides[date] = parsed
		}
	}

	parsed, err := NewSchedule(base, overrides)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func toSlotJSON(slots []Slot) []slotJSON {
	out := make([]slotJSON, len(slots))
	for i, slot := range slots {
		out[i] = slotJSON{Start: slot.Start(), End: slot.End()}
	}
	return out
}

func fromSlotJSON(slots []slotJSON) ([]Slot, error) {
	out := make([]Slot, len(slots))
	for i, slot := range slots {
		parsed, err := NewSlot(slot.Start, slot.End)
		if err != nil {
			return nil, err
		}
		out[i] = parsed
	}
	return out, nil
}
