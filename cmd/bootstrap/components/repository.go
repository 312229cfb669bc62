package components

import (
	"rentfleet/internal/infra/db"
	"rentfleet/internal/infra/readstore"
	repo_impl "rentfleet/internal/infra/repository"
	"rentfleet/internal/usecase/commands"
	"rentfleet/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		// Write side
		fx.Annotate(
			repo_impl.NewUserRepository,
			fx.As(new(commands.UserRepository)),
		),
		fx.Annotate(
			repo_impl.NewTemplateRepository,
			fx.As(new(commands.TemplateRepository)),
		),
		fx.Annotate(
			repo_impl.NewInstanceRepository,
			fx.As(new(commands.InstanceRepository)),
		),
		fx.Annotate(
			repo_impl.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
		),
		fx.Annotate(
			repo_impl.NewPaymentRepository,
			fx.As(new(commands.PaymentRepository)),
		),
		// Read side
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		fx.Annotate(
			readstore.NewTemplateReadStore,
			fx.As(new(queries.TemplateViewRepo)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
