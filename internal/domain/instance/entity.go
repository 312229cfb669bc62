package instance

import (
	"errors"
	"strings"
	"time"

	"rentfleet/internal/domain/availability"

	"github.com/google/uuid"
)

var ErrEmptyInstanceCode = errors.New("instance code cannot be empty")

// Instance is one physical, independently bookable unit of a template.
// Its schedule override, when set, replaces the template schedule entirely.
type Instance struct {
	id           uuid.UUID
	templateID   uuid.UUID
	instanceCode string
	status       Status
	schedule     *availability.Schedule
	createdAt    time.Time
	updatedAt    time.Time
}

func NewInstance(templateID uuid.UUID, instanceCode string, schedule *availability.Schedule) (*Instance, error) {
	instanceCode = strings.TrimSpace(instanceCode)
	if instanceCode == "" {
		return nil, ErrEmptyInstanceCode
	}

	return &Instance{
		id:           uuid.New(),
		templateID:   templateID,
		instanceCode: instanceCode,
		status:       StatusActive,
		schedule:     schedule,
	}, nil
}

func ReconstructInstance(
	id, templateID uuid.UUID,
	instanceCode string,
	status Status,
	schedule *availability.Schedule,
	createdAt, updatedAt time.Time,
) *Instance {
	return &Instance{
		id:           id,
		templateID:   templateID,
		instanceCode: instanceCode,
		status:       status,
		schedule:     schedule,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// EffectiveSchedule resolves the schedule used for availability checks:
// the instance override when present, otherwise the template schedule.
func (i *Instance) EffectiveSchedule(templateSchedule availability.Schedule) availability.Schedule {
	if i.schedule != nil {
		return *i.schedule
	}
	return templateSchedule
}

func (i *Instance) IsBookable() bool {
	return i.status.IsBookable()
}

func (i *Instance) ID() uuid.UUID                    { return i.id }
func (i *Instance) TemplateID() uuid.UUID            { return i.templateID }
func (i *Instance) InstanceCode() string             { return i.instanceCode }
func (i *Instance) Status() Status                   { return i.status }
func (i *Instance) Schedule() *availability.Schedule { return i.schedule }
func (i *Instance) CreatedAt() time.Time             { return i.createdAt }
func (i *Instance) UpdatedAt() time.Time             { return i.updatedAt }
