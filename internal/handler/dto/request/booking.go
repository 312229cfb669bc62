package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	TemplateID uuid.UUID `json:"template_id" binding:"required"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	EndTime    time.Time `json:"end_time" binding:"required"`
	Count      int       `json:"count" binding:"required,min=1"`
}

type TransitionBookingRequest struct {
	Status string `json:"status" binding:"required"`
}

type AppendMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// AvailabilityQuery binds the availability-check query string. Count
// defaults to 1 when omitted.
type AvailabilityQuery struct {
	Start time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	End   time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	Count int       `form:"count"`
}

func (q AvailabilityQuery) UnitCount() int {
	if q.Count <= 0 {
		return 1
	}
	return q.Count
}
