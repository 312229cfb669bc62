package queries

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type TemplateView struct {
	ID                uuid.UUID         `json:"id"`
	RenterID          uuid.UUID         `json:"renter_id"`
	Name              string            `json:"name"`
	Code              string            `json:"code"`
	TotalCount        int               `json:"total_count"`
	PricePerHourCents int64             `json:"price_per_hour_cents"`
	Schedule          json.RawMessage   `json:"schedule,omitempty"`
	Specs             map[string]string `json:"specs,omitempty"`
	Tags              []string          `json:"tags,omitempty"`
	Instances         []*InstanceView   `json:"instances,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

type TemplateListItem struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Code              string    `json:"code"`
	TotalCount        int       `json:"total_count"`
	PricePerHourCents int64     `json:"price_per_hour_cents"`
	Tags              []string  `json:"tags,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type InstanceView struct {
	ID           uuid.UUID `json:"id"`
	TemplateID   uuid.UUID `json:"template_id"`
	InstanceCode string    `json:"instance_code"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type BookingView struct {
	ID           uuid.UUID  `json:"id"`
	TemplateID   uuid.UUID  `json:"template_id"`
	TemplateName string     `json:"template_name"`
	InstanceID   uuid.UUID  `json:"instance_id"`
	InstanceCode string     `json:"instance_code"`
	ClientID     uuid.UUID  `json:"client_id"`
	ClientEmail  string     `json:"client_email"`
	RenterID     uuid.UUID  `json:"renter_id"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      time.Time  `json:"end_time"`
	Status       string     `json:"status"`
	PriceCents   int64      `json:"price_cents"`
	PaymentID    *uuid.UUID `json:"payment_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID           uuid.UUID `json:"id"`
	TemplateID   uuid.UUID `json:"template_id"`
	TemplateName string    `json:"template_name"`
	InstanceCode string    `json:"instance_code"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	PriceCents   int64     `json:"price_cents"`
	CreatedAt    time.Time `json:"created_at"`
}

type MessageView struct {
	ID         uuid.UUID `json:"id"`
	BookingID  uuid.UUID `json:"booking_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

type PaymentView struct {
	ID          uuid.UUID `json:"id"`
	BookingID   uuid.UUID `json:"booking_id"`
	AmountCents int64     `json:"amount_cents"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AuthorizedUserView struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	DisplayName string    `json:"display_name"`
	IsActive    bool      `json:"is_active"`
}
