//go:build unit || e2e

package builder

import (
	"rentfleet/internal/domain/user"
	reqdto "rentfleet/internal/handler/dto/request"
	"rentfleet/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserBuilder struct {
	Email        string
	Password     string
	PasswordHash string
	Role         string
	DisplayName  string
	IsActive     bool
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		Email:        "client@example.com",
		Password:     "password123",
		PasswordHash: "hashed_password",
		Role:         "client",
		DisplayName:  "Test Client",
		IsActive:     true,
	}
}

// Build methods
func (u *UserBuilder) BuildDomain() (*user.User, error) {
	email, err := user.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(u.Role)
	if err != nil {
		return nil, err
	}

	return user.NewUser(email, u.PasswordHash, role, u.DisplayName), nil
}

func (u *UserBuilder) BuildReadModel() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:          uuid.New(),
		Email:       u.Email,
		Role:        u.Role,
		DisplayName: u.DisplayName,
		IsActive:    u.IsActive,
	}
}

func (u *UserBuilder) BuildLoginRequestDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{
		Email:    u.Email,
		Password: u.Password,
	}
}

// Fluent builder methods
func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithRole(role string) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) WithDisplayName(name string) *UserBuilder {
	u.DisplayName = name
	return u
}

func (u *UserBuilder) AsRenter() *UserBuilder {
	u.Email = "renter@example.com"
	u.Role = "renter"
	u.DisplayName = "Test Renter"
	return u
}

func (u *UserBuilder) AsAdmin() *UserBuilder {
	u.Email = "admin@example.com"
	u.Role = "admin"
	u.DisplayName = "Test Admin"
	return u
}

func (u *UserBuilder) AsInactive() *UserBuilder {
	u.IsActive = false
	return u
}
