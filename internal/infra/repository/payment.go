package repository

import (
	"context"
	"time"

	"rentfleet/internal/domain/payment"
	"rentfleet/internal/infra"
	"rentfleet/internal/infra/db"

	"github.com/google/uuid"
)

type PaymentRepository struct {
	db db.DBTX
}

func NewPaymentRepository(pool db.DBTX) *PaymentRepository {
	return &PaymentRepository{db: pool}
}

func (r *PaymentRepository) Create(ctx context.Context, tx db.DBTX, p *payment.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, amount_cents, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
	`

	_, err := tx.Exec(ctx, query, p.ID(), p.BookingID(), p.AmountCents(), p.Status().String())
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("payment already exists for booking", err, infra.KindDuplicateKey)
		}
		if isForeignKeyViolation(err) {
			return infra.WrapRepoErr("booking does not exist", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to create payment", err)
	}

	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	query := paymentSelect + ` WHERE id = $1`
	return r.scanPayment(ctx, r.db, query, id)
}

func (r *PaymentRepository) FindByIDTx(ctx context.Context, tx db.DBTX, id uuid.UUID) (*payment.Payment, error) {
	query := paymentSelect + ` WHERE id = $1 FOR UPDATE`
	return r.scanPayment(ctx, tx, query, id)
}

func (r *PaymentRepository) FindByBooking(ctx context.Context, bookingID uuid.UUID) (*payment.Payment, error) {
	query := paymentSelect + ` WHERE booking_id = $1`
	return r.scanPayment(ctx, r.db, query, bookingID)
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status payment.Status) error {
	query := `UPDATE payments SET status = $2, updated_at = now() WHERE id = $1`

	tag, err := tx.Exec(ctx, query, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update payment status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("payment not found", nil, infra.KindNotFound)
	}
	return nil
}

const paymentSelect = `
	SELECT id, booking_id, amount_cents, status, created_at, updated_at
	FROM payments
`

func (r *PaymentRepository) scanPayment(ctx context.Context, q db.DBTX, query string, arg any) (*payment.Payment, error) {
	var (
		id          uuid.UUID
		bookingID   uuid.UUID
		amountCents int64
		statusRaw   string
		createdAt   time.Time
		updatedAt   time.Time
	)

	err := q.QueryRow(ctx, query, arg).Scan(&id, &bookingID, &amountCents, &statusRaw, &createdAt, &updatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment", err)
	}

	status, err := payment.NewStatus(statusRaw)
	if err != nil {
		return nil, infra.WrapRepoErr("stored payment status is invalid", err)
	}

	return payment.ReconstructPayment(id, bookingID, amountCents, status, createdAt, updatedAt), nil
}
