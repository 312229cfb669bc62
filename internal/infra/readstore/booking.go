package readstore

import (
	"context"
	"errors"

	"rentfleet/internal/infra"
	"rentfleet/internal/infra/db"
	"rentfleet/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(pool db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: pool}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query := `
		SELECT b.id, b.template_id, t.name, b.instance_id, i.instance_code,
		       b.client_id, u.email, b.renter_id,
		       b.start_time, b.end_time, b.status, b.price_cents, b.payment_id,
		       b.created_at, b.updated_at
		FROM bookings b
		JOIN templates t ON t.id = b.template_id
		JOIN instances i ON i.id = b.instance_id
		JOIN users u ON u.id = b.client_id
		WHERE b.id = $1
	`

	var view queries.BookingView
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.TemplateID, &view.TemplateName, &view.InstanceID, &view.InstanceCode,
		&view.ClientID, &view.ClientEmail, &view.RenterID,
		&view.StartTime, &view.EndTime, &view.Status, &view.PriceCents, &view.PaymentID,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	return &view, nil
}

func (r *BookingReadStore) FindByClient(ctx context.Context, clientID uuid.UUID) ([]*queries.BookingListItem, error) {
	return r.findList(ctx, `b.client_id = $1`, clientID)
}

func (r *BookingReadStore) FindByRenter(ctx context.Context, renterID uuid.UUID) ([]*queries.BookingListItem, error) {
	return r.findList(ctx, `b.renter_id = $1`, renterID)
}

func (r *BookingReadStore) findList(ctx context.Context, where string, arg any) ([]*queries.BookingListItem, error) {
	query := `
		SELECT b.id, b.template_id, t.name, i.instance_code,
		       b.start_time, b.end_time, b.status, b.price_cents, b.created_at
		FROM bookings b
		JOIN templates t ON t.id = b.template_id
		JOIN instances i ON i.id = b.instance_id
		WHERE ` + where + `
		ORDER BY b.created_at DESC, b.id
	`

	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var item queries.BookingListItem
		err := rows.Scan(&item.ID, &item.TemplateID, &item.TemplateName, &item.InstanceCode,
			&item.StartTime, &item.EndTime, &item.Status, &item.PriceCents, &item.CreatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read bookings", err)
	}
	return items, nil
}

func (r *BookingReadStore) FindMessages(ctx context.Context, bookingID uuid.UUID) ([]*queries.MessageView, error) {
	query := `
		SELECT m.id, m.booking_id, m.sender_id, u.display_name, m.body, m.created_at
		FROM booking_messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.booking_id = $1
		ORDER BY m.created_at, m.id
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list messages", err)
	}
	defer rows.Close()

	var messages []*queries.MessageView
	for rows.Next() {
		var view queries.MessageView
		if err := rows.Scan(&view.ID, &view.BookingID, &view.SenderID, &view.SenderName, &view.Body, &view.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan message", err)
		}
		messages = append(messages, &view)
	}

	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read messages", err)
	}
	return messages, nil
}
