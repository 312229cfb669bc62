package response

import (
	"encoding/json"
	"time"

	"rentfleet/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type TemplateResponse struct {
	ID                uuid.UUID           `json:"id"`
	RenterID          uuid.UUID           `json:"renterId"`
	Name              string              `json:"name"`
	Code              string              `json:"code"`
	TotalCount        int                 `json:"totalCount"`
	PricePerHourCents int64               `json:"pricePerHourCents"`
	Schedule          json.RawMessage     `json:"schedule,omitempty"`
	Specs             map[string]string   `json:"specs,omitempty"`
	Tags              []string            `json:"tags,omitempty"`
	Instances         []*InstanceResponse `json:"instances,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

type TemplateListResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Code              string    `json:"code"`
	TotalCount        int       `json:"totalCount"`
	PricePerHourCents int64     `json:"pricePerHourCents"`
	Tags              []string  `json:"tags,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

type InstanceResponse struct {
	ID           uuid.UUID `json:"id"`
	TemplateID   uuid.UUID `json:"templateId"`
	InstanceCode string    `json:"instanceCode"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func FromTemplateView(view *queries.TemplateView) *TemplateResponse {
	var resp TemplateResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromTemplateListItem(item *queries.TemplateListItem) *TemplateListResponse {
	var resp TemplateListResponse
	_ = copier.Copy(&resp, item)
	return &resp
}
