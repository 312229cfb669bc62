package commands

import (
	"context"

	"rentfleet/internal/domain/booking"
	"rentfleet/internal/domain/payment"
	"rentfleet/internal/infra"
	"rentfleet/internal/infra/db"
	"rentfleet/internal/pkg/errs"
	"rentfleet/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrPaymentNotFound      = errs.New("payment not found")
	ErrBookingNotApproved   = errs.New("booking is not approved")
	ErrBookingNotCanceled   = errs.New("booking is not canceled")
	ErrPaymentStateConflict = errs.New("payment state does not allow this move")
)

type PaymentCommands interface {
	CompletePayment(ctx context.Context, clientID uuid.UUID, bookingID uuid.UUID) (*payment.Payment, error)
	RefundPayment(ctx context.Context, renterID uuid.UUID, bookingID uuid.UUID) (*payment.Payment, error)
}

type paymentCommandsImpl struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	db          *pgxpool.Pool
}

func NewPaymentCommands(bookingRepo BookingRepository, paymentRepo PaymentRepository, db *pgxpool.Pool) PaymentCommands {
	return &paymentCommandsImpl{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		db:          db,
	}
}

// CompletePayment moves the booking's payment pending→completed. Only the
// booking's client may pay, and only once the renter has approved.
func (p *paymentCommandsImpl) CompletePayment(ctx context.Context, clientID uuid.UUID, bookingID uuid.UUID) (*payment.Payment, error) {
	return p.movePayment(ctx, bookingID, func(bk *booking.Booking, pay *payment.Payment) error {
		if bk.ClientID() != clientID {
			return ErrNotParticipant
		}
		if bk.Status() != booking.StatusApprovedByRenter {
			return ErrBookingNotApproved
		}
		if err := pay.Complete(); err != nil {
			return errs.Mark(err, ErrPaymentStateConflict)
		}
		return nil
	})
}

// RefundPayment moves the booking's payment completed→refunded. Only the
// template's renter may refund, and only after the client canceled.
func (p *paymentCommandsImpl) RefundPayment(ctx context.Context, renterID uuid.UUID, bookingID uuid.UUID) (*payment.Payment, error) {
	return p.movePayment(ctx, bookingID, func(bk *booking.Booking, pay *payment.Payment) error {
		if bk.RenterID() != renterID {
			return ErrNotParticipant
		}
		if bk.Status() != booking.StatusCanceledByClient {
			return ErrBookingNotCanceled
		}
		if err := pay.Refund(); err != nil {
			return errs.Mark(err, ErrPaymentStateConflict)
		}
		return nil
	})
}

// movePayment locks the booking row first, then the payment row, so
// concurrent complete/refund attempts on one booking serialize.
func (p *paymentCommandsImpl) movePayment(
	ctx context.Context,
	bookingID uuid.UUID,
	move func(bk *booking.Booking, pay *payment.Payment) error,
) (*payment.Payment, error) {
	return shared.RunInTx(ctx, p.db, func(tx db.DBTX) (*payment.Payment, error) {
		bk, err := p.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrBookingNotFound
			}
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if bk.PaymentID() == nil {
			return nil, ErrPaymentNotFound
		}

		pay, err := p.paymentRepo.FindByIDTx(ctx, tx, *bk.PaymentID())
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrPaymentNotFound
			}
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := move(bk, pay); err != nil {
			return nil, err
		}

		if err := p.paymentRepo.UpdateStatus(ctx, tx, pay.ID(), pay.Status()); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return pay, nil
	})
}
