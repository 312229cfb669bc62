package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"rentfleet/internal/domain/user"
	reqdto "rentfleet/internal/handler/dto/request"
	"rentfleet/internal/pkg/errs"
	"rentfleet/internal/pkg/jwt"
	"rentfleet/internal/pkg/password"
	"rentfleet/internal/usecase/queries"
)

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type LoginResult struct {
	UserID uuid.UUID
	Token  string
}

type AuthCommands interface {
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
}

type authCommandsImpl struct {
	readStore  queries.UserReadStore
	userRepo   UserRepository
	jwtService *jwt.Service
}

func NewAuthCommands(readStore queries.UserReadStore, userRepo UserRepository, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		readStore:  readStore,
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	view, err := a.validateUser(ctx, credentials)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	token, err := a.jwtService.GenerateToken(view.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	if updateErr := a.userRepo.UpdateLastLogin(ctx, view.ID); updateErr != nil {
		// Login already succeeded; a stale last_login is acceptable
		slog.Warn("failed to update last login", "user_id", view.ID, "error", updateErr.Error())
	}

	return &LoginResult{UserID: view.ID, Token: token}, nil
}

func (a *authCommandsImpl) validateUser(ctx context.Context, credentials user.Credentials) (*queries.AuthorizedUserView, error) {
	view, hashedPassword, err := a.readStore.FindByEmail(ctx, credentials.Email().Value())
	if err != nil {
		// Same error as a password mismatch to prevent user enumeration
		return nil, ErrInvalidCredentials
	}

	if !view.IsActive {
		return nil, ErrUserInactive
	}

	if err := password.ComparePassword(hashedPassword, credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	return view, nil
}
