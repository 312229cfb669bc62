package components

import (
	"rentfleet/internal/domain/booking"
	"rentfleet/internal/pkg/clock"
	"rentfleet/internal/pkg/config"
	"rentfleet/internal/usecase/commands"
	"rentfleet/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		booking.NewHourlyPriceCalculator,
		fx.As(new(booking.PriceCalculator)),
	),
	booking.NewFactory,
	func(cfg config.Config) config.BookingConfig {
		return cfg.Booking
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewTemplateCommands,
		commands.NewBookingCommands,
		commands.NewPaymentCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewTemplateQueries,
		queries.NewBookingQueries,
	),
)
