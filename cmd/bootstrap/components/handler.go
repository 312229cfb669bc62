package components

import (
	"rentfleet/internal/handler"
	"rentfleet/internal/handler/api"
	"rentfleet/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewTemplateHandler,
		api.NewBookingHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
