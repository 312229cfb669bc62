package instance

import "errors"

var ErrInvalidStatus = errors.New("invalid instance status")

type Status string

const (
	StatusActive      Status = "active"
	StatusMaintenance Status = "maintenance"
	StatusRetired     Status = "retired"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusMaintenance, StatusRetired:
		return true
	default:
		return false
	}
}

// IsBookable reports whether units in this status may receive new bookings.
func (s Status) IsBookable() bool {
	return s == StatusActive
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
