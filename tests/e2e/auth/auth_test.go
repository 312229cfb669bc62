//go:build e2e

package auth

import (
	"net/http"
	"testing"
	"time"

	"rentfleet/internal/domain/user"
	"rentfleet/internal/handler/dto/request"
	"rentfleet/internal/pkg/jwt"
	"rentfleet/tests/common/authtest"
	"rentfleet/tests/common/dbtest"
	"rentfleet/tests/common/httptest"
	"rentfleet/tests/e2e"

	"github.com/stretchr/testify/suite"
)

type AuthE2ETestSuite struct {
	e2e.SharedSuite
}

func TestAuthE2E(t *testing.T) {
	suite.Run(t, new(AuthE2ETestSuite))
}

func (s *AuthE2ETestSuite) TestLogin() {
	url := "/api/auth/login"

	s.Run("success: valid credentials return token and user", func() {
		dbtest.CreateTestUser(s.T(), s.DB, "client@example.com", "client")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, url,
			request.LoginRequest{Email: "client@example.com", Password: dbtest.TestPassword}, "")

		var body struct {
			AccessToken string `json:"access_token"`
			User        struct {
				Email string `json:"email"`
				Role  string `json:"role"`
			} `json:"user"`
		}
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &body)
		s.NotEmpty(body.AccessToken)
		s.Equal("client@example.com", body.User.Email)
		s.Equal("client", body.User.Role)

		accessCookie := httptest.ExtractCookie(w, "access_token")
		s.Require().NotNil(accessCookie)
		s.Equal(body.AccessToken, accessCookie.Value)
		s.True(accessCookie.HttpOnly)
	})

	s.Run("error: unknown user is rejected with 401", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, url,
			request.LoginRequest{Email: "nobody@example.com", Password: dbtest.TestPassword}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "")
	})

	s.Run("error: wrong password is rejected with 401", func() {
		dbtest.CreateTestUser(s.T(), s.DB, "client@example.com", "client")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, url,
			request.LoginRequest{Email: "client@example.com", Password: "wrong-password"}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "")
	})

	s.Run("error: deactivated account is rejected with 403", func() {
		dbtest.CreateTestUser(s.T(), s.DB, "client@example.com", "client")
		_, err := s.DB.Exec(s.T().Context(),
			"UPDATE users SET is_active = false WHERE email = $1", "client@example.com")
		s.Require().NoError(err)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, url,
			request.LoginRequest{Email: "client@example.com", Password: dbtest.TestPassword}, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "")
	})

	s.Run("error: missing fields fail validation with 400", func() {
		testCases := []struct {
			name string
			req  request.LoginRequest
		}{
			{name: "empty email", req: request.LoginRequest{Password: dbtest.TestPassword}},
			{name: "empty password", req: request.LoginRequest{Email: "client@example.com"}},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, url, tc.req, "")
				httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "")
			})
		}
	})
}

func (s *AuthE2ETestSuite) TestMe() {
	url := "/api/auth/me"

	s.Run("success: returns the authenticated user without secrets", func() {
		token := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "renter@example.com", "renter")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, url, nil, token)

		var body struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		}
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &body)
		s.Equal("renter@example.com", body.Email)
		s.Equal("renter", body.Role)
		s.NotContains(w.Body.String(), "password")
	})

	s.Run("error: 401 without a token", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "")
	})

	s.Run("error: 401 with an expired token", func() {
		userID := dbtest.CreateTestUser(s.T(), s.DB, "client@example.com", "client")

		expiredService := jwt.NewService(s.Config.JWT.Secret, -time.Hour)
		expiredToken, err := expiredService.GenerateToken(userID, user.RoleClient)
		s.Require().NoError(err)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, url, nil, expiredToken)
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "")
	})

	s.Run("error: 401 with a garbage token", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, url, nil, "not-a-jwt")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "")
	})
}

func (s *AuthE2ETestSuite) TestLogout() {
	s.Run("success: clears the session cookie", func() {
		token := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "client@example.com", "client")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/auth/logout", nil, token)
		s.Equal(http.StatusNoContent, w.Code)

		accessCookie := httptest.ExtractCookie(w, "access_token")
		s.Require().NotNil(accessCookie)
		s.Empty(accessCookie.Value)
		s.Negative(accessCookie.MaxAge)
	})

	s.Run("error: 401 without a token", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/auth/logout", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "")
	})
}

func (s *AuthE2ETestSuite) TestProtectedEndpoints() {
	s.Run("error: booking endpoints require authentication", func() {
		endpoints := []struct {
			method string
			path   string
		}{
			{http.MethodPost, "/api/bookings"},
			{http.MethodGet, "/api/bookings"},
			{http.MethodPost, "/api/templates"},
		}
		for _, ep := range endpoints {
			w := httptest.PerformRequest(s.T(), s.Router, ep.method, ep.path, nil, "")
			httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "")
		}
	})
}
