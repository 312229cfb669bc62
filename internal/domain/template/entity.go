package template

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"rentfleet/internal/domain/availability"

	"github.com/google/uuid"
)

var (
	ErrEmptyName        = errors.New("template name cannot be empty")
	ErrNameTooLong      = errors.New("template name is too long (max 255 characters)")
	ErrInvalidCode      = errors.New("template code must be a non-empty slug (max 64 characters)")
	ErrNegativePrice    = errors.New("price per hour cannot be negative")
	ErrInvalidUnitCount = errors.New("total count must be between 1 and 1000")
)

const (
	MaxNameLength = 255
	MaxCodeLength = 64
	MaxUnitCount  = 1000
)

var codeRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Template is a logical equipment type owned by a renter account.
// TotalCount is advisory: the authoritative unit count is the number of
// instance rows that exist for the template.
type Template struct {
	id                uuid.UUID
	renterID          uuid.UUID
	name              string
	code              string
	totalCount        int
	pricePerHourCents int64
	schedule          availability.Schedule
	specs             map[string]string
	tags              []string
	createdAt         time.Time
	updatedAt         time.Time
}

func NewTemplate(
	renterID uuid.UUID,
	name, code string,
	totalCount int,
	pricePerHourCents int64,
	schedule availability.Schedule,
	specs map[string]string,
	tags []string,
) (*Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return nil, ErrNameTooLong
	}

	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || len(code) > MaxCodeLength || !codeRegex.MatchString(code) {
		return nil, ErrInvalidCode
	}

	if pricePerHourCents < 0 {
		return nil, ErrNegativePrice
	}
	if totalCount < 1 || totalCount > MaxUnitCount {
		return nil, ErrInvalidUnitCount
	}

	return &Template{
		id:                uuid.New(),
		renterID:          renterID,
		name:              name,
		code:              code,
		totalCount:        totalCount,
		pricePerHourCents: pricePerHourCents,
		schedule:          schedule,
		specs:             specs,
		tags:              tags,
	}, nil
}

func ReconstructTemplate(
	id, renterID uuid.UUID,
	name, code string,
	totalCount int,
	pricePerHourCents int64,
	schedule availability.Schedule,
	specs map[string]string,
	tags []string,
	createdAt, updatedAt time.Time,
) *Template {
	return &Template{
		id:                id,
		renterID:          renterID,
		name:              name,
		code:              code,
		totalCount:        totalCount,
		pricePerHourCents: pricePerHourCents,
		schedule:          schedule,
		specs:             specs,
		tags:              tags,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// InstanceCode derives the human-readable code of the n-th unit (1-based).
func (t *Template) InstanceCode(n int) string {
	return fmt.Sprintf("%s-%d", t.code, n)
}

func (t *Template) ID() uuid.UUID                   { return t.id }
func (t *Template) RenterID() uuid.UUID             { return t.renterID }
func (t *Template) Name() string                    { return t.name }
func (t *Template) Code() string                    { return t.code }
func (t *Template) TotalCount() int                 { return t.totalCount }
func (t *Template) PricePerHourCents() int64        { return t.pricePerHourCents }
func (t *Template) Schedule() availability.Schedule { return t.schedule }
func (t *Template) Specs() map[string]string        { return t.specs }
func (t *Template) Tags() []string                  { return t.tags }
func (t *Template) CreatedAt() time.Time            { return t.createdAt }
func (t *Template) UpdatedAt() time.Time            { return t.updatedAt }
