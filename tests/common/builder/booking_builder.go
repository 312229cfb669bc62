//go:build unit || e2e

package builder

import (
	"time"

	"rentfleet/internal/domain/booking"
	reqdto "rentfleet/internal/handler/dto/request"
	"rentfleet/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID         uuid.UUID
	TemplateID uuid.UUID
	InstanceID uuid.UUID
	ClientID   uuid.UUID
	RenterID   uuid.UUID
	StartTime  time.Time
	EndTime    time.Time
	Status     booking.Status
	PriceCents int64
	PaymentID  *uuid.UUID
	CreatedAt  time.Time
}

func NewBookingBuilder() *BookingBuilder {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:         uuid.New(),
		TemplateID: uuid.New(),
		InstanceID: uuid.New(),
		ClientID:   uuid.New(),
		RenterID:   uuid.New(),
		StartTime:  start,
		EndTime:    start.Add(4 * time.Hour),
		Status:     booking.StatusPendingRenterApproval,
		PriceCents: 30000,
		CreatedAt:  time.Now(),
	}
}

// Build methods
func (b *BookingBuilder) BuildDomain() *booking.Booking {
	return booking.ReconstructBooking(
		b.ID, b.TemplateID, b.InstanceID, b.ClientID, b.RenterID,
		booking.ReconstructWindow(b.StartTime, b.EndTime),
		b.Status,
		b.PriceCents,
		b.PaymentID,
		b.CreatedAt, b.CreatedAt,
	)
}

func (b *BookingBuilder) BuildWindow() booking.Window {
	return booking.ReconstructWindow(b.StartTime, b.EndTime)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		TemplateID: b.TemplateID,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Count:      1,
	}
}

func (b *BookingBuilder) BuildViewQuery() *queries.BookingView {
	return &queries.BookingView{
		ID:           b.ID,
		TemplateID:   b.TemplateID,
		TemplateName: "Mini Excavator 1.5t",
		InstanceID:   b.InstanceID,
		InstanceCode: "mini-excavator-1",
		ClientID:     b.ClientID,
		ClientEmail:  "client@example.com",
		RenterID:     b.RenterID,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Status:       b.Status.String(),
		PriceCents:   b.PriceCents,
		PaymentID:    b.PaymentID,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	return &queries.BookingListItem{
		ID:           b.ID,
		TemplateID:   b.TemplateID,
		TemplateName: "Mini Excavator 1.5t",
		InstanceCode: "mini-excavator-1",
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Status:       b.Status.String(),
		PriceCents:   b.PriceCents,
		CreatedAt:    b.CreatedAt,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithClientID(clientID uuid.UUID) *BookingBuilder {
	b.ClientID = clientID
	return b
}

func (b *BookingBuilder) WithRenterID(renterID uuid.UUID) *BookingBuilder {
	b.RenterID = renterID
	return b
}

func (b *BookingBuilder) WithInstanceID(instanceID uuid.UUID) *BookingBuilder {
	b.InstanceID = instanceID
	return b
}

func (b *BookingBuilder) WithStatus(status booking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithWindow(start, end time.Time) *BookingBuilder {
	b.StartTime = start
	b.EndTime = end
	return b
}
