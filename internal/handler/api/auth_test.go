//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"rentfleet/internal/handler/api"
	reqdto "rentfleet/internal/handler/dto/request"
	"rentfleet/internal/infra"
	"rentfleet/internal/pkg/config"
	"rentfleet/internal/pkg/cookie"
	"rentfleet/internal/pkg/jwt"
	"rentfleet/internal/usecase/commands"
	"rentfleet/internal/usecase/queries"
	"rentfleet/tests/common/builder"
	"rentfleet/tests/common/httptest"
	"rentfleet/tests/common/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubAuthCommands struct {
	login func(ctx context.Context, req reqdto.LoginRequest) (*commands.LoginResult, error)
}

func (s *stubAuthCommands) Login(ctx context.Context, req reqdto.LoginRequest) (*commands.LoginResult, error) {
	return s.login(ctx, req)
}

type stubUserQueries struct {
	getCurrentUser func(ctx context.Context, userID uuid.UUID) (*queries.AuthorizedUserView, error)
}

func (s *stubUserQueries) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*queries.AuthorizedUserView, error) {
	return s.getCurrentUser(ctx, userID)
}

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	authCommands *stubAuthCommands
	userQueries  *stubUserQueries
	userID       uuid.UUID
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.authCommands = &stubAuthCommands{}
	s.userQueries = &stubUserQueries{}
	s.userID = uuid.New()

	jwtService := jwt.NewService("test-secret", time.Hour)
	handler := api.NewAuthHandler(s.authCommands, s.userQueries, jwtService, config.Config{})

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.userID)
		c.Next()
	}

	s.router.POST("/auth/login", handler.Login)
	s.router.POST("/auth/logout", authMiddleware, handler.Logout)
	s.router.GET("/auth/me", authMiddleware, handler.Me)
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"
	reqBody := builder.NewUserBuilder().BuildLoginRequestDTO()

	s.Run("success: returns token, user view, and cookie", func() {
		userView := builder.NewUserBuilder().BuildReadModel()
		s.authCommands.login = func(_ context.Context, req reqdto.LoginRequest) (*commands.LoginResult, error) {
			s.Equal(reqBody.Email, req.Email)
			return &commands.LoginResult{UserID: userView.ID, Token: "signed-token"}, nil
		}
		s.userQueries.getCurrentUser = func(_ context.Context, userID uuid.UUID) (*queries.AuthorizedUserView, error) {
			s.Equal(userView.ID, userID)
			return userView, nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body struct {
			AccessToken string                      `json:"access_token"`
			User        *queries.AuthorizedUserView `json:"user"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("signed-token", body.AccessToken)
		s.Equal(userView.Email, body.User.Email)

		accessCookie := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(accessCookie)
		s.Equal("signed-token", accessCookie.Value)
		s.True(accessCookie.HttpOnly)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "invalid credentials", commandsError: commands.ErrInvalidCredentials, expectedStatus: http.StatusUnauthorized},
			{name: "unknown user", commandsError: commands.ErrUserNotFound, expectedStatus: http.StatusUnauthorized},
			{name: "inactive account", commandsError: commands.ErrUserInactive, expectedStatus: http.StatusForbidden},
			{name: "token generation failure", commandsError: commands.ErrTokenGeneration, expectedStatus: http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.authCommands.login = func(_ context.Context, _ reqdto.LoginRequest) (*commands.LoginResult, error) {
					return nil, tc.commandsError
				}
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing email", mutate: testutil.Field("email", nil)},
			{name: "missing password", mutate: testutil.Field("password", nil)},
			{name: "malformed email", mutate: testutil.Field("email", "not-an-email")},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	s.Run("success: clears the access token cookie", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)

		accessCookie := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(accessCookie)
		s.Empty(accessCookie.Value)
		s.Negative(accessCookie.MaxAge)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})
}

func (s *AuthHandlerTestSuite) TestMe() {
	url := "/auth/me"

	s.Run("success: returns the current user", func() {
		userView := builder.NewUserBuilder().BuildReadModel()
		s.userQueries.getCurrentUser = func(_ context.Context, userID uuid.UUID) (*queries.AuthorizedUserView, error) {
			s.Equal(s.userID, userID)
			return userView, nil
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body queries.AuthorizedUserView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(userView.Email, body.Email)
		s.Equal(userView.Role, body.Role)
	})

	s.Run("error: 404 when the account no longer exists", func() {
		s.userQueries.getCurrentUser = func(_ context.Context, _ uuid.UUID) (*queries.AuthorizedUserView, error) {
			return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
		}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}
