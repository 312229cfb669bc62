package repository

import (
	"context"
	"encoding/json"
	"time"

	"rentfleet/internal/domain/availability"
	"rentfleet/internal/domain/instance"
	"rentfleet/internal/infra"
	"rentfleet/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type InstanceRepository struct {
	db db.DBTX
}

func NewInstanceRepository(pool db.DBTX) *InstanceRepository {
	return &InstanceRepository{db: pool}
}

func (r *InstanceRepository) CreateBatch(ctx context.Context, tx db.DBTX, instances []*instance.Instance) error {
	query := `
		INSERT INTO instances (id, template_id, instance_code, status, schedule, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
	`

	for _, inst := range instances {
		scheduleJSON, err := marshalInstanceSchedule(inst.Schedule())
		if err != nil {
			return infra.WrapRepoErr("failed to encode instance schedule", err)
		}

		_, err = tx.Exec(ctx, query,
			inst.ID(),
			inst.TemplateID(),
			inst.InstanceCode(),
			inst.Status().String(),
			scheduleJSON,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return infra.WrapRepoErr("instance code already exists", err, infra.KindDuplicateKey)
			}
			return infra.WrapRepoErr("failed to create instance", err)
		}
	}

	return nil
}

func (r *InstanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*instance.Instance, error) {
	query := instanceSelect + ` WHERE id = $1`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find instance", err)
	}
	instances, err := scanInstances(rows)
	if err != nil {
		return nil, err
	}
	if len(instances) == 0 {
		return nil, infra.WrapRepoErr("instance not found", pgx.ErrNoRows, infra.KindNotFound)
	}
	return instances[0], nil
}

// FindByTemplateForUpdate locks the template's instance rows for the
// duration of the transaction. This is the serialization point that keeps
// two concurrent booking requests from both seeing an instance as free.
func (r *InstanceRepository) FindByTemplateForUpdate(ctx context.Context, tx db.DBTX, templateID uuid.UUID) ([]*instance.Instance, error) {
	query := instanceSelect + ` WHERE template_id = $1 ORDER BY instance_code FOR UPDATE`
	rows, err := tx.Query(ctx, query, templateID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock instances", err)
	}
	return scanInstances(rows)
}

func (r *InstanceRepository) FindByTemplate(ctx context.Context, templateID uuid.UUID) ([]*instance.Instance, error) {
	query := instanceSelect + ` WHERE template_id = $1 ORDER BY instance_code`
	rows, err := r.db.Query(ctx, query, templateID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find instances", err)
	}
	return scanInstances(rows)
}

func (r *InstanceRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status instance.Status) error {
	query := `UPDATE instances SET status = $2, updated_at = now() WHERE id = $1`

	tag, err := tx.Exec(ctx, query, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update instance status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("instance not found", nil, infra.KindNotFound)
	}
	return nil
}

const instanceSelect = `
	SELECT id, template_id, instance_code, status, schedule, created_at, updated_at
	FROM instances
`

func scanInstances(rows pgx.Rows) ([]*instance.Instance, error) {
	defer rows.Close()

	var instances []*instance.Instance
	for rows.Next() {
		var (
			id           uuid.UUID
			templateID   uuid.UUID
			instanceCode string
			statusRaw    string
			scheduleRaw  []byte
			createdAt    time.Time
			updatedAt    time.Time
		)

		if err := rows.Scan(&id, &templateID, &instanceCode, &statusRaw, &scheduleRaw, &createdAt, &updatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan instance", err)
		}

		status, err := instance.NewStatus(statusRaw)
		if err != nil {
			return nil, infra.WrapRepoErr("stored instance status is invalid", err)
		}

		schedule, err := unmarshalInstanceSchedule(scheduleRaw)
		if err != nil {
			return nil, infra.WrapRepoErr("stored instance schedule is invalid", err)
		}

		instances = append(instances, instance.ReconstructInstance(id, templateID, instanceCode, status, schedule, createdAt, updatedAt))
	}

	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read instances", err)
	}
	return instances, nil
}

func marshalInstanceSchedule(s *availability.Schedule) ([]byte, error) {
	if s == nil || s.IsEmpty() {
		return nil, nil
	}
	return json.Marshal(*s)
}

func unmarshalInstanceSchedule(raw []byte) (*availability.Schedule, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var s availability.Schedule
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
