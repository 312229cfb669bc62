package booking

import (
	"errors"

	"rentfleet/internal/domain/template"
	"rentfleet/internal/pkg/clock"

	"github.com/google/uuid"
)

var ErrInsufficientAvailability = errors.New("not enough available instances for the requested window")

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

func NewFactory(clock clock.Clock, priceCalculator PriceCalculator) *Factory {
	return &Factory{
		Clock:           clock,
		PriceCalculator: priceCalculator,
	}
}

// Allocation is the outcome of a successful multi-unit booking request:
// one pending booking per assigned instance, priced uniformly.
type Allocation struct {
	Bookings       []*Booking
	AssignedCodes  []string
	UnitPriceCents int64
}

func (a Allocation) TotalPriceCents() int64 {
	return a.UnitPriceCents * int64(len(a.Bookings))
}

// CreateBookings assigns the first count available instances to a new
// booking each, all initialized to pending_renter_approval. It either
// allocates exactly count units or fails; no partial allocation exists.
func (f *Factory) CreateBookings(
	tmpl *template.Template,
	result AvailabilityResult,
	clientID uuid.UUID,
	window Window,
	count int,
) (*Allocation, error) {
	if err := window.ValidateNotPast(f.Clock.Now()); err != nil {
		return nil, err
	}

	selected, ok := result.SelectFirstFit(count)
	if !ok {
		return nil, ErrInsufficientAvailability
	}

	unitPrice := f.PriceCalculator.UnitPriceCents(tmpl.PricePerHourCents(), window)

	bookings := make([]*Booking, len(selected))
	codes := make([]string, len(selected))
	for i, inst := range selected {
		bookings[i] = newBooking(tmpl.ID(), inst.ID(), clientID, tmpl.RenterID(), window, unitPrice)
		codes[i] = inst.InstanceCode()
	}

	return &Allocation{
		Bookings:       bookings,
		AssignedCodes:  codes,
		UnitPriceCents: unitPrice,
	}, nil
}
