package api

import (
	"errors"
	"net/http"

	reqdto "rentfleet/internal/handler/dto/request"
	resdto "rentfleet/internal/handler/dto/response"
	"rentfleet/internal/handler/middleware"
	"rentfleet/internal/infra"
	"rentfleet/internal/pkg/config"
	"rentfleet/internal/pkg/cookie"
	"rentfleet/internal/pkg/jwt"
	"rentfleet/internal/usecase/commands"
	"rentfleet/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authCommands commands.AuthCommands
	userQueries  queries.UserQueries
	jwtService   *jwt.Service
	cookieCfg    config.CookieConfig
}

func NewAuthHandler(authCommands commands.AuthCommands, userQueries queries.UserQueries, jwtService *jwt.Service, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		authCommands: authCommands,
		userQueries:  userQueries,
		jwtService:   jwtService,
		cookieCfg:    cfg.Cookie,
	}
}

// @Summary User login
// @Description Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.authCommands.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidCredentials),
			errors.Is(err, commands.ErrUserNotFound),
			errors.Is(err, commands.ErrAuthenticationFailed):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid email or password",
			})
		case errors.Is(err, commands.ErrUserInactive):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Account is inactive",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	userView, err := h.userQueries.GetCurrentUser(c.Request.Context(), result.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	cookie.SetAccessToken(c, h.cookieCfg, result.Token, h.jwtService.TokenDuration())

	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: result.Token,
		User:        userView,
	})
}

// @Summary User logout
// @Description Logout current user session
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// Stateless JWT: clearing the cookie is all the server can do.
	cookie.ClearAccessToken(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Description Get current authenticated user information
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} queries.AuthorizedUserView
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	userView, err := h.userQueries.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, userView)
}
