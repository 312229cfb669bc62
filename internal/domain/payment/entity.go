package payment

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus  = errors.New("invalid payment status")
	ErrNegativeAmount = errors.New("payment amount cannot be negative")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusRefunded:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// StateError reports an illegal payment state change.
type StateError struct {
	Current Status
	Target  Status
}

func (e *StateError) Error() string {
	return fmt.Sprintf("payment cannot move from %s to %s", e.Current, e.Target)
}

// Payment is one record per booking's payment attempt.
type Payment struct {
	id          uuid.UUID
	bookingID   uuid.UUID
	amountCents int64
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
}

func NewPayment(bookingID uuid.UUID, amountCents int64) (*Payment, error) {
	if amountCents < 0 {
		return nil, ErrNegativeAmount
	}
	return &Payment{
		id:          uuid.New(),
		bookingID:   bookingID,
		amountCents: amountCents,
		status:      StatusPending,
	}, nil
}

func ReconstructPayment(id, bookingID uuid.UUID, amountCents int64, status Status, createdAt, updatedAt time.Time) *Payment {
	return &Payment{
		id:          id,
		bookingID:   bookingID,
		amountCents: amountCents,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (p *Payment) Complete() error {
	if p.status != StatusPending {
		return &StateError{Current: p.status, Target: StatusCompleted}
	}
	p.status = StatusCompleted
	return nil
}

func (p *Payment) Fail() error {
	if p.status != StatusPending {
		return &StateError{Current: p.status, Target: StatusFailed}
	}
	p.status = StatusFailed
	return nil
}

func (p *Payment) Refund() error {
	if p.status != StatusCompleted {
		return &StateError{Current: p.status, Target: StatusRefunded}
	}
	p.status = StatusRefunded
	return nil
}

func (p *Payment) ID() uuid.UUID        { return p.id }
func (p *Payment) BookingID() uuid.UUID { return p.bookingID }
func (p *Payment) AmountCents() int64   { return p.amountCents }
func (p *Payment) Status() Status       { return p.status }
func (p *Payment) CreatedAt() time.Time { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time { return p.updatedAt }
