package commands

import (
	"context"

	"rentfleet/internal/domain/booking"
	"rentfleet/internal/domain/instance"
	"rentfleet/internal/domain/payment"
	"rentfleet/internal/domain/template"
	"rentfleet/internal/domain/user"
	"rentfleet/internal/infra/db"

	"github.com/google/uuid"
)

// Write-side repository ports, implemented by internal/infra/repository.
// Methods taking a db.DBTX participate in the caller's transaction.

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
}

type TemplateRepository interface {
	Create(ctx context.Context, tx db.DBTX, t *template.Template) error
	FindByID(ctx context.Context, id uuid.UUID) (*template.Template, error)
	FindByIDTx(ctx context.Context, tx db.DBTX, id uuid.UUID) (*template.Template, error)
}

type InstanceRepository interface {
	CreateBatch(ctx context.Context, tx db.DBTX, instances []*instance.Instance) error
	FindByID(ctx context.Context, id uuid.UUID) (*instance.Instance, error)
	FindByTemplate(ctx context.Context, templateID uuid.UUID) ([]*instance.Instance, error)
	FindByTemplateForUpdate(ctx context.Context, tx db.DBTX, templateID uuid.UUID) ([]*instance.Instance, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status instance.Status) error
}

type BookingRepository interface {
	CreateBatch(ctx context.Context, tx db.DBTX, bookings []*booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error)
	FindNonTerminalByTemplate(ctx context.Context, templateID uuid.UUID) ([]*booking.Booking, error)
	FindNonTerminalByTemplateTx(ctx context.Context, tx db.DBTX, templateID uuid.UUID) ([]*booking.Booking, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) error
	AttachPayment(ctx context.Context, tx db.DBTX, bookingID, paymentID uuid.UUID) error
	CreateMessage(ctx context.Context, tx db.DBTX, m *booking.Message) error
}

type PaymentRepository interface {
	Create(ctx context.Context, tx db.DBTX, p *payment.Payment) error
	FindByIDTx(ctx context.Context, tx db.DBTX, id uuid.UUID) (*payment.Payment, error)
	FindByBooking(ctx context.Context, bookingID uuid.UUID) (*payment.Payment, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status payment.Status) error
}
