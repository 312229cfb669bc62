package repository

import (
	"context"
	"time"

	"rentfleet/internal/domain/user"
	"rentfleet/internal/infra"
	"rentfleet/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(pool db.DBTX) *UserRepository {
	return &UserRepository{db: pool}
}

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, u *user.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, role, display_name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
	`

	_, err := tx.Exec(ctx, query,
		u.ID(),
		u.Email().Value(),
		u.PasswordHash(),
		u.Role().String(),
		u.DisplayName(),
		u.IsActive(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("email already registered", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create user", err)
	}

	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email user.Email) (*user.User, error) {
	query := `
		SELECT id, email, password_hash, role, display_name, last_login, is_active, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return r.scanUser(r.db.QueryRow(ctx, query, email.Value()))
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `
		SELECT id, email, password_hash, role, display_name, last_login, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}

func (r *UserRepository) scanUser(row interface{ Scan(dest ...any) error }) (*user.User, error) {
	var (
		id           uuid.UUID
		emailRaw     string
		passwordHash string
		roleRaw      string
		displayName  string
		lastLogin    *time.Time
		isActive     bool
		createdAt    time.Time
		updatedAt    time.Time
	)

	err := row.Scan(&id, &emailRaw, &passwordHash, &roleRaw, &displayName, &lastLogin, &isActive, &createdAt, &updatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}

	email, err := user.NewEmail(emailRaw)
	if err != nil {
		return nil, infra.WrapRepoErr("stored email is invalid", err)
	}
	role, err := user.NewRole(roleRaw)
	if err != nil {
		return nil, infra.WrapRepoErr("stored role is invalid", err)
	}

	return user.ReconstructUser(id, email, passwordHash, role, displayName, lastLogin, isActive, createdAt, updatedAt), nil
}
