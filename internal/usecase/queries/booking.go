package queries

import (
	"context"

	"rentfleet/internal/domain/user"
	"rentfleet/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrAccessDenied = errs.New("caller may not view this booking")

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]*BookingListItem, error)
	FindByRenter(ctx context.Context, renterID uuid.UUID) ([]*BookingListItem, error)
	FindMessages(ctx context.Context, bookingID uuid.UUID) ([]*MessageView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*BookingView, error)
	ListForUser(ctx context.Context, actorID uuid.UUID, actorRole user.Role) ([]*BookingListItem, error)
	ListMessages(ctx context.Context, actorID uuid.UUID, actorRole user.Role, bookingID uuid.UUID) ([]*MessageView, error)
}

type bookingQueriesImpl struct {
	repo BookingViewRepo
}

func NewBookingQueries(repo BookingViewRepo) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

// GetByID restricts the detail view to the booking's client, the template's
// renter, and admins.
func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canViewBooking(view, actorID, actorRole) {
		return nil, ErrAccessDenied
	}
	return view, nil
}

// ListForUser returns the caller's own side of the marketplace: clients see
// the bookings they created, renters see bookings against their templates.
func (q *bookingQueriesImpl) ListForUser(ctx context.Context, actorID uuid.UUID, actorRole user.Role) ([]*BookingListItem, error) {
	if actorRole == user.RoleRenter {
		return q.repo.FindByRenter(ctx, actorID)
	}
	return q.repo.FindByClient(ctx, actorID)
}

func (q *bookingQueriesImpl) ListMessages(ctx context.Context, actorID uuid.UUID, actorRole user.Role, bookingID uuid.UUID) ([]*MessageView, error) {
	view, err := q.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !canViewBooking(view, actorID, actorRole) {
		return nil, ErrAccessDenied
	}
	return q.repo.FindMessages(ctx, bookingID)
}

func canViewBooking(view *BookingView, actorID uuid.UUID, actorRole user.Role) bool {
	if actorRole == user.RoleAdmin {
		return true
	}
	return view.ClientID == actorID || view.RenterID == actorID
}
