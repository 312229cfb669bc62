package booking

import "errors"

var ErrInvalidStatus = errors.New("invalid booking status")

type Status string

const (
	StatusPendingRenterApproval Status = "pending_renter_approval"
	StatusApprovedByRenter      Status = "approved_by_renter"
	StatusRejectedByRenter      Status = "rejected_by_renter"
	StatusSentBackToClient      Status = "sent_back_to_client"
	StatusCanceledByClient      Status = "canceled_by_client"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPendingRenterApproval,
		StatusApprovedByRenter,
		StatusRejectedByRenter,
		StatusSentBackToClient,
		StatusCanceledByClient:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status ends the booking lifecycle.
// Terminal bookings no longer block their instance's availability.
func (s Status) IsTerminal() bool {
	return s == StatusRejectedByRenter || s == StatusCanceledByClient
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
