package repository

import (
	"context"
	"encoding/json"
	"time"

	"rentfleet/internal/domain/availability"
	"rentfleet/internal/domain/template"
	"rentfleet/internal/infra"
	"rentfleet/internal/infra/db"

	"github.com/google/uuid"
)

type TemplateRepository struct {
	db db.DBTX
}

func NewTemplateRepository(pool db.DBTX) *TemplateRepository {
	return &TemplateRepository{db: pool}
}

func (r *TemplateRepository) Create(ctx context.Context, tx db.DBTX, t *template.Template) error {
	scheduleJSON, err := marshalSchedule(t.Schedule())
	if err != nil {
		return infra.WrapRepoErr("failed to encode schedule", err)
	}
	specsJSON, err := json.Marshal(t.Specs())
	if err != nil {
		return infra.WrapRepoErr("failed to encode specs", err)
	}

	query := `
		INSERT INTO templates (id, renter_id, name, code, total_count, price_per_hour_cents, schedule, specs, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
	`

	_, err = tx.Exec(ctx, query,
		t.ID(),
		t.RenterID(),
		t.Name(),
		t.Code(),
		t.TotalCount(),
		t.PricePerHourCents(),
		scheduleJSON,
		specsJSON,
		t.Tags(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("template code already exists", err, infra.KindDuplicateKey)
		}
		if isForeignKeyViolation(err) {
			return infra.WrapRepoErr("renter account does not exist", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to create template", err)
	}

	return nil
}

func (r *TemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*template.Template, error) {
	return r.findByID(ctx, r.db, id)
}

// FindByIDTx reads through the given transaction so booking allocation
// observes a consistent snapshot.
func (r *TemplateRepository) FindByIDTx(ctx context.Context, tx db.DBTX, id uuid.UUID) (*template.Template, error) {
	return r.findByID(ctx, tx, id)
}

func (r *TemplateRepository) findByID(ctx context.Context, q db.DBTX, id uuid.UUID) (*template.Template, error) {
	query := `
		SELECT id, renter_id, name, code, total_count, price_per_hour_cents, schedule, specs, tags, created_at, updated_at
		FROM templates
		WHERE id = $1
	`

	var (
		templateID        uuid.UUID
		renterID          uuid.UUID
		name              string
		code              string
		totalCount        int
		pricePerHourCents int64
		scheduleRaw       []byte
		specsRaw          []byte
		tags              []string
		createdAt         time.Time
		updatedAt         time.Time
	)

	err := q.QueryRow(ctx, query, id).Scan(
		&templateID, &renterID, &name, &code, &totalCount, &pricePerHourCents,
		&scheduleRaw, &specsRaw, &tags, &createdAt, &updatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("template not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find template", err)
	}

	schedule, err := unmarshalSchedule(scheduleRaw)
	if err != nil {
		return nil, infra.WrapRepoErr("stored schedule is invalid", err)
	}

	var specs map[string]string
	if len(specsRaw) > 0 {
		if err := json.Unmarshal(specsRaw, &specs); err != nil {
			return nil, infra.WrapRepoErr("stored specs are invalid", err)
		}
	}

	return template.ReconstructTemplate(
		templateID, renterID, name, code, totalCount, pricePerHourCents,
		schedule, specs, tags, createdAt, updatedAt,
	), nil
}

func marshalSchedule(s availability.Schedule) ([]byte, error) {
	if s.IsEmpty() {
		return nil, nil
	}
	return json.Marshal(s)
}

func unmarshalSchedule(raw []byte) (availability.Schedule, error) {
	if len(raw) == 0 {
		return availability.Schedule{}, nil
	}
	var s availability.Schedule
	if err := json.Unmarshal(raw, &s); err != nil {
		return availability.Schedule{}, err
	}
	return s, nil
}
