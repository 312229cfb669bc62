package request

import (
	"rentfleet/internal/domain/availability"
	"rentfleet/internal/domain/template"

	"github.com/google/uuid"
)

type CreateTemplateRequest struct {
	Name              string                 `json:"name" binding:"required"`
	Code              string                 `json:"code" binding:"required"`
	TotalCount        int                    `json:"total_count" binding:"required"`
	PricePerHourCents int64                  `json:"price_per_hour_cents" binding:"min=0"`
	Schedule          *availability.Schedule `json:"schedule,omitempty"`
	Specs             map[string]string      `json:"specs,omitempty"`
	Tags              []string               `json:"tags,omitempty"`
}

func (r CreateTemplateRequest) ToDomain(renterID uuid.UUID) (*template.Template, error) {
	var schedule availability.Schedule
	if r.Schedule != nil {
		schedule = *r.Schedule
	}

	return template.NewTemplate(
		renterID,
		r.Name,
		r.Code,
		r.TotalCount,
		r.PricePerHourCents,
		schedule,
		r.Specs,
		r.Tags,
	)
}

type UpdateInstanceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
