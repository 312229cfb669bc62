//go:build unit || e2e

package builder

import (
	"time"

	"rentfleet/internal/domain/availability"
	"rentfleet/internal/domain/template"
	reqdto "rentfleet/internal/handler/dto/request"
	"rentfleet/internal/usecase/queries"

	"github.com/google/uuid"
)

type TemplateBuilder struct {
	RenterID          uuid.UUID
	Name              string
	Code              string
	TotalCount        int
	PricePerHourCents int64
	Schedule          availability.Schedule
	Specs             map[string]string
	Tags              []string
}

func NewTemplateBuilder() *TemplateBuilder {
	return &TemplateBuilder{
		RenterID:          uuid.New(),
		Name:              "Mini Excavator 1.5t",
		Code:              "mini-excavator",
		TotalCount:        3,
		PricePerHourCents: 7500,
		Specs:             map[string]string{"weight": "1.5t"},
		Tags:              []string{"excavator", "compact"},
	}
}

// Build methods
func (b *TemplateBuilder) BuildDomain() (*template.Template, error) {
	return template.NewTemplate(
		b.RenterID,
		b.Name,
		b.Code,
		b.TotalCount,
		b.PricePerHourCents,
		b.Schedule,
		b.Specs,
		b.Tags,
	)
}

func (b *TemplateBuilder) BuildCreateRequestDTO() reqdto.CreateTemplateRequest {
	return reqdto.CreateTemplateRequest{
		Name:              b.Name,
		Code:              b.Code,
		TotalCount:        b.TotalCount,
		PricePerHourCents: b.PricePerHourCents,
		Specs:             b.Specs,
		Tags:              b.Tags,
	}
}

func (b *TemplateBuilder) BuildViewQuery() *queries.TemplateView {
	now := time.Now()
	return &queries.TemplateView{
		ID:                uuid.New(),
		RenterID:          b.RenterID,
		Name:              b.Name,
		Code:              b.Code,
		TotalCount:        b.TotalCount,
		PricePerHourCents: b.PricePerHourCents,
		Specs:             b.Specs,
		Tags:              b.Tags,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// Fluent builder methods
func (b *TemplateBuilder) WithRenterID(renterID uuid.UUID) *TemplateBuilder {
	b.RenterID = renterID
	return b
}

func (b *TemplateBuilder) WithName(name string) *TemplateBuilder {
	b.Name = name
	return b
}

func (b *TemplateBuilder) WithCode(code string) *TemplateBuilder {
	b.Code = code
	return b
}

func (b *TemplateBuilder) WithTotalCount(count int) *TemplateBuilder {
	b.TotalCount = count
	return b
}

func (b *TemplateBuilder) WithPricePerHourCents(price int64) *TemplateBuilder {
	b.PricePerHourCents = price
	return b
}

func (b *TemplateBuilder) WithSchedule(schedule availability.Schedule) *TemplateBuilder {
	b.Schedule = schedule
	return b
}
