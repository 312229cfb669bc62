package readstore

import (
	"context"
	"encoding/json"
	"errors"

	"rentfleet/internal/infra"
	"rentfleet/internal/infra/db"
	"rentfleet/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TemplateReadStore struct {
	db db.DBTX
}

func NewTemplateReadStore(pool db.DBTX) *TemplateReadStore {
	return &TemplateReadStore{db: pool}
}

func (r *TemplateReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.TemplateView, error) {
	query := `
		SELECT id, renter_id, name, code, total_count, price_per_hour_cents, schedule, specs, tags, created_at, updated_at
		FROM templates
		WHERE id = $1
	`

	var (
		view        queries.TemplateView
		scheduleRaw []byte
		specsRaw    []byte
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.RenterID, &view.Name, &view.Code, &view.TotalCount,
		&view.PricePerHourCents, &scheduleRaw, &specsRaw, &view.Tags,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("template not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find template by ID", err)
	}

	view.Schedule = json.RawMessage(scheduleRaw)
	if len(specsRaw) > 0 {
		if err := json.Unmarshal(specsRaw, &view.Specs); err != nil {
			return nil, infra.WrapRepoErr("stored specs are invalid", err)
		}
	}

	return &view, nil
}

func (r *TemplateReadStore) FindInstances(ctx context.Context, templateID uuid.UUID) ([]*queries.InstanceView, error) {
	query := `
		SELECT id, template_id, instance_code, status, created_at, updated_at
		FROM instances
		WHERE template_id = $1
		ORDER BY instance_code
	`

	rows, err := r.db.Query(ctx, query, templateID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find instances", err)
	}
	defer rows.Close()

	var instances []*queries.InstanceView
	for rows.Next() {
		var view queries.InstanceView
		if err := rows.Scan(&view.ID, &view.TemplateID, &view.InstanceCode, &view.Status, &view.CreatedAt, &view.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan instance", err)
		}
		instances = append(instances, &view)
	}

	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read instances", err)
	}
	return instances, nil
}

func (r *TemplateReadStore) List(ctx context.Context, limit, offset int32) ([]*queries.TemplateListItem, error) {
	query := `
		SELECT id, name, code, total_count, price_per_hour_cents, tags, created_at
		FROM templates
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list templates", err)
	}
	defer rows.Close()

	var items []*queries.TemplateListItem
	for rows.Next() {
		var item queries.TemplateListItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Code, &item.TotalCount, &item.PricePerHourCents, &item.Tags, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan template", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read templates", err)
	}
	return items, nil
}
