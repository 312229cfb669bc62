package repository

import (
	"context"
	"time"

	"rentfleet/internal/domain/booking"
	"rentfleet/internal/infra"
	"rentfleet/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(pool db.DBTX) *BookingRepository {
	return &BookingRepository{db: pool}
}

func (r *BookingRepository) CreateBatch(ctx context.Context, tx db.DBTX, bookings []*booking.Booking) error {
	query := `
		INSERT INTO bookings (id, template_id, instance_id, client_id, renter_id, start_time, end_time, status, price_cents, payment_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
	`

	for _, b := range bookings {
		_, err := tx.Exec(ctx, query,
			b.ID(),
			b.TemplateID(),
			b.InstanceID(),
			b.ClientID(),
			b.RenterID(),
			b.Window().Start(),
			b.Window().End(),
			b.Status().String(),
			b.PriceCents(),
			b.PaymentID(),
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return infra.WrapRepoErr("booking references a missing row", err, infra.KindForeignKeyViolated)
			}
			return infra.WrapRepoErr("failed to create booking", err)
		}
	}

	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	query := bookingSelect + ` WHERE id = $1`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, infra.WrapRepoErr("booking not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return bookings[0], nil
}

// FindByIDForUpdate locks the booking row so status transitions and payment
// moves serialize per booking.
func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	query := bookingSelect + ` WHERE id = $1 FOR UPDATE`
	rows, err := tx.Query(ctx, query, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock booking", err)
	}
	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, infra.WrapRepoErr("booking not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return bookings[0], nil
}

// FindNonTerminalByTemplateTx loads every booking that still blocks
// availability for the template's instances, inside the caller's
// transaction.
func (r *BookingRepository) FindNonTerminalByTemplateTx(ctx context.Context, tx db.DBTX, templateID uuid.UUID) ([]*booking.Booking, error) {
	query := bookingSelect + ` WHERE template_id = $1 AND status NOT IN ($2, $3)`
	rows, err := tx.Query(ctx, query, templateID,
		booking.StatusCanceledByClient.String(),
		booking.StatusRejectedByRenter.String(),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find active bookings", err)
	}
	return scanBookings(rows)
}

func (r *BookingRepository) FindNonTerminalByTemplate(ctx context.Context, templateID uuid.UUID) ([]*booking.Booking, error) {
	return r.FindNonTerminalByTemplateTx(ctx, r.db, templateID)
}

func (r *BookingRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]*booking.Booking, error) {
	query := bookingSelect + ` WHERE client_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find client bookings", err)
	}
	return scanBookings(rows)
}

func (r *BookingRepository) FindByRenter(ctx context.Context, renterID uuid.UUID) ([]*booking.Booking, error) {
	query := bookingSelect + ` WHERE renter_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, renterID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find renter bookings", err)
	}
	return scanBookings(rows)
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) error {
	query := `UPDATE bookings SET status = $2, updated_at = now() WHERE id = $1`

	tag, err := tx.Exec(ctx, query, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) AttachPayment(ctx context.Context, tx db.DBTX, bookingID, paymentID uuid.UUID) error {
	query := `UPDATE bookings SET payment_id = $2, updated_at = now() WHERE id = $1`

	if _, err := tx.Exec(ctx, query, bookingID, paymentID); err != nil {
		return infra.WrapRepoErr("failed to attach payment", err)
	}
	return nil
}

func (r *BookingRepository) CreateMessage(ctx context.Context, tx db.DBTX, m *booking.Message) error {
	query := `
		INSERT INTO booking_messages (id, booking_id, sender_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := tx.Exec(ctx, query, m.ID(), m.BookingID(), m.SenderID(), m.Body(), m.CreatedAt())
	if err != nil {
		if isForeignKeyViolation(err) {
			return infra.WrapRepoErr("booking does not exist", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to create message", err)
	}
	return nil
}

func (r *BookingRepository) FindMessages(ctx context.Context, bookingID uuid.UUID) ([]*booking.Message, error) {
	query := `
		SELECT id, booking_id, sender_id, body, created_at
		FROM booking_messages
		WHERE booking_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find messages", err)
	}
	defer rows.Close()

	var messages []*booking.Message
	for rows.Next() {
		var (
			id        uuid.UUID
			bID       uuid.UUID
			senderID  uuid.UUID
			body      string
			createdAt time.Time
		)
		if err := rows.Scan(&id, &bID, &senderID, &body, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan message", err)
		}
		messages = append(messages, booking.ReconstructMessage(id, bID, senderID, body, createdAt))
	}

	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read messages", err)
	}
	return messages, nil
}

const bookingSelect = `
	SELECT id, template_id, instance_id, client_id, renter_id, start_time, end_time, status, price_cents, payment_id, created_at, updated_at
	FROM bookings
`

func scanBookings(rows pgx.Rows) ([]*booking.Booking, error) {
	defer rows.Close()

	var bookings []*booking.Booking
	for rows.Next() {
		var (
			id         uuid.UUID
			templateID uuid.UUID
			instanceID uuid.UUID
			clientID   uuid.UUID
			renterID   uuid.UUID
			startTime  time.Time
			endTime    time.Time
			statusRaw  string
			priceCents int64
			paymentID  *uuid.UUID
			createdAt  time.Time
			updatedAt  time.Time
		)

		err := rows.Scan(&id, &templateID, &instanceID, &clientID, &renterID,
			&startTime, &endTime, &statusRaw, &priceCents, &paymentID, &createdAt, &updatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}

		status, err := booking.NewStatus(statusRaw)
		if err != nil {
			return nil, infra.WrapRepoErr("stored booking status is invalid", err)
		}

		bookings = append(bookings, booking.ReconstructBooking(
			id, templateID, instanceID, clientID, renterID,
			booking.ReconstructWindow(startTime, endTime),
			status, priceCents, paymentID, createdAt, updatedAt,
		))
	}

	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read bookings", err)
	}
	return bookings, nil
}
