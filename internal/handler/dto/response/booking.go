package response

import (
	"time"

	"rentfleet/internal/domain/booking"
	"rentfleet/internal/domain/payment"
	"rentfleet/internal/usecase/commands"
	"rentfleet/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID           uuid.UUID  `json:"id"`
	TemplateID   uuid.UUID  `json:"templateId"`
	TemplateName string     `json:"templateName"`
	InstanceID   uuid.UUID  `json:"instanceId"`
	InstanceCode string     `json:"instanceCode"`
	ClientID     uuid.UUID  `json:"clientId"`
	ClientEmail  string     `json:"clientEmail"`
	RenterID     uuid.UUID  `json:"renterId"`
	StartTime    time.Time  `json:"startTime"`
	EndTime      time.Time  `json:"endTime"`
	Status       string     `json:"status"`
	PriceCents   int64      `json:"priceCents"`
	PaymentID    *uuid.UUID `json:"paymentId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type BookingListResponse struct {
	ID           uuid.UUID `json:"id"`
	TemplateID   uuid.UUID `json:"templateId"`
	TemplateName string    `json:"templateName"`
	InstanceCode string    `json:"instanceCode"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	Status       string    `json:"status"`
	PriceCents   int64     `json:"priceCents"`
	CreatedAt    time.Time `json:"createdAt"`
}

type CreateBookingResponse struct {
	BookingIDs      []uuid.UUID `json:"bookingIds"`
	AssignedCodes   []string    `json:"assignedCodes"`
	Status          string      `json:"status"`
	UnitPriceCents  int64       `json:"unitPriceCents"`
	TotalPriceCents int64       `json:"totalPriceCents"`
}

type AvailabilityResponse struct {
	AvailableCount  int      `json:"availableCount"`
	AvailableCodes  []string `json:"availableCodes"`
	UnitPriceCents  int64    `json:"unitPriceCents"`
	TotalPriceCents int64    `json:"totalPriceCents"`
}

type MessageResponse struct {
	ID         uuid.UUID `json:"id"`
	BookingID  uuid.UUID `json:"bookingId"`
	SenderID   uuid.UUID `json:"senderId"`
	SenderName string    `json:"senderName,omitempty"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
}

type PaymentResponse struct {
	ID          uuid.UUID `json:"id"`
	BookingID   uuid.UUID `json:"bookingId"`
	AmountCents int64     `json:"amountCents"`
	Status      string    `json:"status"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromBookingListItem(item *queries.BookingListItem) *BookingListResponse {
	var resp BookingListResponse
	_ = copier.Copy(&resp, item)
	return &resp
}

func FromCreateBookingResult(result *commands.CreateBookingResult) *CreateBookingResponse {
	var resp CreateBookingResponse
	_ = copier.Copy(&resp, result)
	return &resp
}

func FromAvailabilityReport(report *commands.AvailabilityReport) *AvailabilityResponse {
	var resp AvailabilityResponse
	_ = copier.Copy(&resp, report)
	return &resp
}

func FromMessageView(view *queries.MessageView) *MessageResponse {
	var resp MessageResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromPayment(p *payment.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:          p.ID(),
		BookingID:   p.BookingID(),
		AmountCents: p.AmountCents(),
		Status:      p.Status().String(),
	}
}

func FromMessage(m *booking.Message) *MessageResponse {
	return &MessageResponse{
		ID:        m.ID(),
		BookingID: m.BookingID(),
		SenderID:  m.SenderID(),
		Body:      m.Body(),
		CreatedAt: m.CreatedAt(),
	}
}
