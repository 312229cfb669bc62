package queries

import (
	"context"

	"github.com/google/uuid"
)

const defaultTemplatePageSize = 50

type TemplateViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TemplateView, error)
	FindInstances(ctx context.Context, templateID uuid.UUID) ([]*InstanceView, error)
	List(ctx context.Context, limit, offset int32) ([]*TemplateListItem, error)
}

type TemplateQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*TemplateView, error)
	List(ctx context.Context, limit, offset int) ([]*TemplateListItem, error)
}

type templateQueriesImpl struct {
	repo TemplateViewRepo
}

func NewTemplateQueries(repo TemplateViewRepo) TemplateQueries {
	return &templateQueriesImpl{repo: repo}
}

// GetByID returns the template together with its instances so one call
// serves the catalog detail page.
func (q *templateQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*TemplateView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	instances, err := q.repo.FindInstances(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Instances = instances

	return view, nil
}

func (q *templateQueriesImpl) List(ctx context.Context, limit, offset int) ([]*TemplateListItem, error) {
	if limit <= 0 {
		limit = defaultTemplatePageSize
	}
	if offset < 0 {
		offset = 0
	}
	return q.repo.List(ctx, int32(limit), int32(offset))
}
