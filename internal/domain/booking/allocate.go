package booking

import (
	"rentfleet/internal/domain/availability"
	"rentfleet/internal/domain/instance"

	"github.com/google/uuid"
)

// AvailabilityResult lists the instances free for a window, in the same
// order they were passed in. Count never exceeds the number of bookable
// instances given.
type AvailabilityResult struct {
	Available []*instance.Instance
	Count     int
}

// FindAvailableInstances scans every bookable instance and evaluates the
// schedule and overlap tests independently per instance. An instance is
// available iff its effective schedule covers the window and none of its
// non-terminal bookings overlap it.
func FindAvailableInstances(
	instances []*instance.Instance,
	existing []*Booking,
	templateSchedule availability.Schedule,
	window Window,
) AvailabilityResult {
	byInstance := make(map[uuid.UUID][]Window)
	for _, b := range existing {
		if b.IsTerminal() {
			continue
		}
		byInstance[b.InstanceID()] = append(byInstance[b.InstanceID()], b.Window())
	}

	var available []*instance.Instance
	for _, inst := range instances {
		if !inst.IsBookable() {
			continue
		}
		if !inst.EffectiveSchedule(templateSchedule).Covers(window.Start(), window.End()) {
			continue
		}
		if overlapsAny(window, byInstance[inst.ID()]) {
			continue
		}
		available = append(available, inst)
	}

	return AvailabilityResult{Available: available, Count: len(available)}
}

// SelectFirstFit picks the first count available instances in listing
// order. There is no balancing objective; ok is false when fewer than
// count are available and no partial selection is returned.
func (r AvailabilityResult) SelectFirstFit(count int) ([]*instance.Instance, bool) {
	if count <= 0 || r.Count < count {
		return nil, false
	}
	return r.Available[:count], true
}

func overlapsAny(window Window, others []Window) bool {
	for _, other := range others {
		if window.Overlaps(other) {
			return true
		}
	}
	return false
}
