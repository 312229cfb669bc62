package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"rentfleet/internal/domain/user"
	"rentfleet/internal/handler/api"
	"rentfleet/internal/handler/middleware"
	"rentfleet/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	templateHandler *api.TemplateHandler,
	bookingHandler *api.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, templateHandler, bookingHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	templateHandler *api.TemplateHandler,
	bookingHandler *api.BookingHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		templates := apiGroup.Group("/templates")
		{
			addRoutes(templates, []route{
				{Method: http.MethodGet, Path: "", Handler: templateHandler.ListTemplates},
				{Method: http.MethodGet, Path: "/:id", Handler: templateHandler.GetTemplate},
			})

			templatesAuthed := templates.Group("")
			templatesAuthed.Use(authMiddleware.RequireAuth())
			addRoutes(templatesAuthed, []route{
				{Method: http.MethodGet, Path: "/:id/availability", Handler: templateHandler.CheckAvailability},
				{Method: http.MethodPost, Path: "", Handler: templateHandler.CreateTemplate,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleRenter)}},
			})
		}

		instances := apiGroup.Group("/instances")
		instances.Use(authMiddleware.RequireAuth())
		{
			addRoutes(instances, []route{
				{Method: http.MethodPatch, Path: "/:id/status", Handler: templateHandler.UpdateInstanceStatus,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleRenter)}},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.CreateBooking,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleClient)}},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.ListBookings},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetBooking},
				{Method: http.MethodPost, Path: "/:id/status", Handler: bookingHandler.TransitionBooking},
				{Method: http.MethodGet, Path: "/:id/messages", Handler: bookingHandler.ListMessages},
				{Method: http.MethodPost, Path: "/:id/messages", Handler: bookingHandler.AppendMessage},
				{Method: http.MethodPost, Path: "/:id/payment/complete", Handler: bookingHandler.CompletePayment,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleClient)}},
				{Method: http.MethodPost, Path: "/:id/payment/refund", Handler: bookingHandler.RefundPayment,
					Mw: []gin.HandlerFunc{authMiddleware.RequireRole(user.RoleRenter)}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
