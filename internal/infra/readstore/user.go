package readstore

import (
	"context"
	"errors"

	"rentfleet/internal/infra"
	"rentfleet/internal/infra/db"
	"rentfleet/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(pool db.DBTX) *UserReadStore {
	return &UserReadStore{db: pool}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	query := `
		SELECT id, email, role, display_name, is_active
		FROM users
		WHERE id = $1
	`

	var view queries.AuthorizedUserView
	err := r.db.QueryRow(ctx, query, id).Scan(&view.ID, &view.Email, &view.Role, &view.DisplayName, &view.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	return &view, nil
}

// FindByEmail also returns the stored password hash so login can verify
// credentials without loading the write-side entity.
func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	query := `
		SELECT id, email, role, display_name, is_active, password_hash
		FROM users
		WHERE email = $1
	`

	var (
		view queries.AuthorizedUserView
		hash string
	)
	err := r.db.QueryRow(ctx, query, email).Scan(&view.ID, &view.Email, &view.Role, &view.DisplayName, &view.IsActive, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}

	return &view, hash, nil
}
