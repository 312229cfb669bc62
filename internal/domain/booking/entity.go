package booking

import (
	"time"

	"rentfleet/internal/domain/user"

	"github.com/google/uuid"
)

// Booking reserves exactly one instance for a time window. Multi-unit
// requests become multiple bookings, one per assigned instance. Bookings
// are never deleted, only transitioned.
type Booking struct {
	id         uuid.UUID
	templateID uuid.UUID
	instanceID uuid.UUID
	clientID   uuid.UUID
	renterID   uuid.UUID
	window     Window
	status     Status
	priceCents int64
	paymentID  *uuid.UUID
	createdAt  time.Time
	updatedAt  time.Time
}

func newBooking(templateID, instanceID, clientID, renterID uuid.UUID, window Window, priceCents int64) *Booking {
	return &Booking{
		id:         uuid.New(),
		templateID: templateID,
		instanceID: instanceID,
		clientID:   clientID,
		renterID:   renterID,
		window:     window,
		status:     StatusPendingRenterApproval,
		priceCents: priceCents,
	}
}

func ReconstructBooking(
	id, templateID, instanceID, clientID, renterID uuid.UUID,
	window Window,
	status Status,
	priceCents int64,
	paymentID *uuid.UUID,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		templateID: templateID,
		instanceID: instanceID,
		clientID:   clientID,
		renterID:   renterID,
		window:     window,
		status:     status,
		priceCents: priceCents,
		paymentID:  paymentID,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (b *Booking) IsTerminal() bool {
	return b.status.IsTerminal()
}

// Transition applies a role-gated status change. Illegal moves return a
// *TransitionError naming the role and both statuses.
func (b *Booking) Transition(next Status, role user.Role) error {
	if !CanTransition(b.status, next, role) {
		return &TransitionError{Role: role, Current: b.status, Target: next}
	}
	b.status = next
	return nil
}

func (b *Booking) AttachPayment(paymentID uuid.UUID) {
	b.paymentID = &paymentID
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) TemplateID() uuid.UUID { return b.templateID }
func (b *Booking) InstanceID() uuid.UUID { return b.instanceID }
func (b *Booking) ClientID() uuid.UUID   { return b.clientID }
func (b *Booking) RenterID() uuid.UUID   { return b.renterID }
func (b *Booking) Window() Window        { return b.window }
func (b *Booking) Status() Status        { return b.status }
func (b *Booking) PriceCents() int64     { return b.priceCents }
func (b *Booking) PaymentID() *uuid.UUID { return b.paymentID }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }
