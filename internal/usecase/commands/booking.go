package commands

import (
	"context"
	"errors"
	"time"

	"rentfleet/internal/domain/booking"
	"rentfleet/internal/domain/payment"
	"rentfleet/internal/domain/user"
	reqdto "rentfleet/internal/handler/dto/request"
	"rentfleet/internal/infra"
	"rentfleet/internal/infra/db"
	"rentfleet/internal/pkg/config"
	"rentfleet/internal/pkg/errs"
	"rentfleet/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrTemplateNotFound         = errs.New("template not found")
	ErrBookingNotFound          = errs.New("booking not found")
	ErrInvalidWindow            = errs.New("invalid booking window")
	ErrInvalidUnitCount         = errs.New("unit count out of range")
	ErrInsufficientAvailability = errs.New("not enough available instances")
	ErrInvalidTransition        = errs.New("status transition not allowed")
	ErrNotParticipant           = errs.New("caller is not a participant of the booking")
	ErrDomainValidation         = errs.New("domain validation error")
	ErrDatabaseOperationFailed  = errs.New("database operation failed")
)

type AvailabilityReport struct {
	AvailableCount  int
	AvailableCodes  []string
	UnitPriceCents  int64
	TotalPriceCents int64
}

type CreateBookingResult struct {
	BookingIDs      []uuid.UUID
	AssignedCodes   []string
	Status          string
	UnitPriceCents  int64
	TotalPriceCents int64
}

type BookingCommands interface {
	CheckAvailability(ctx context.Context, templateID uuid.UUID, start, end time.Time, count int) (*AvailabilityReport, error)
	CreateBooking(ctx context.Context, clientID uuid.UUID, req reqdto.CreateBookingRequest) (*CreateBookingResult, error)
	TransitionBooking(ctx context.Context, actorID uuid.UUID, actorRole user.Role, bookingID uuid.UUID, next string) error
	AppendMessage(ctx context.Context, actorID uuid.UUID, actorRole user.Role, bookingID uuid.UUID, body string) (*booking.Message, error)
}

type bookingCommandsImpl struct {
	templateRepo TemplateRepository
	instanceRepo InstanceRepository
	bookingRepo  BookingRepository
	paymentRepo  PaymentRepository
	factory      *booking.Factory
	db           *pgxpool.Pool
	cfg          config.BookingConfig
}

func NewBookingCommands(
	templateRepo TemplateRepository,
	instanceRepo InstanceRepository,
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	factory *booking.Factory,
	db *pgxpool.Pool,
	cfg config.BookingConfig,
) BookingCommands {
	return &bookingCommandsImpl{
		templateRepo: templateRepo,
		instanceRepo: instanceRepo,
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		factory:      factory,
		db:           db,
		cfg:          cfg,
	}
}

// CheckAvailability is a read-only dry run of the allocator. Its answer can
// be stale by the time a booking is attempted; CreateBooking re-evaluates
// under row locks.
func (b *bookingCommandsImpl) CheckAvailability(ctx context.Context, templateID uuid.UUID, start, end time.Time, count int) (*AvailabilityReport, error) {
	if count < 1 || count > b.cfg.MaxUnitsPerRequest {
		return nil, ErrInvalidUnitCount
	}

	window, err := booking.NewWindow(start, end)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidWindow)
	}

	tmpl, err := b.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	instances, err := b.instanceRepo.FindByTemplate(ctx, templateID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	existing, err := b.bookingRepo.FindNonTerminalByTemplate(ctx, templateID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	result := booking.FindAvailableInstances(instances, existing, tmpl.Schedule(), window)

	codes := make([]string, result.Count)
	for i, inst := range result.Available {
		codes[i] = inst.InstanceCode()
	}

	unitPrice := b.factory.PriceCalculator.UnitPriceCents(tmpl.PricePerHourCents(), window)
	return &AvailabilityReport{
		AvailableCount:  result.Count,
		AvailableCodes:  codes,
		UnitPriceCents:  unitPrice,
		TotalPriceCents: unitPrice * int64(count),
	}, nil
}

// CreateBooking allocates count instances atomically. The template's
// instance rows are locked for the whole transaction, so two concurrent
// requests for the last unit cannot both succeed; serialization failures
// are retried by the tx manager.
func (b *bookingCommandsImpl) CreateBooking(ctx context.Context, clientID uuid.UUID, req reqdto.CreateBookingRequest) (*CreateBookingResult, error) {
	if req.Count < 1 || req.Count > b.cfg.MaxUnitsPerRequest {
		return nil, ErrInvalidUnitCount
	}

	window, err := booking.NewWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidWindow)
	}

	allocation, err := shared.RunInTxWithRetry(ctx, b.db, b.cfg.TxMaxRetries, func(tx db.DBTX) (*booking.Allocation, error) {
		tmpl, err := b.templateRepo.FindByIDTx(ctx, tx, req.TemplateID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrTemplateNotFound
			}
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		instances, err := b.instanceRepo.FindByTemplateForUpdate(ctx, tx, req.TemplateID)
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		existing, err := b.bookingRepo.FindNonTerminalByTemplateTx(ctx, tx, req.TemplateID)
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		result := booking.FindAvailableInstances(instances, existing, tmpl.Schedule(), window)

		allocation, err := b.factory.CreateBookings(tmpl, result, clientID, window, req.Count)
		if err != nil {
			switch {
			case errors.Is(err, booking.ErrInsufficientAvailability):
				return nil, ErrInsufficientAvailability
			case errors.Is(err, booking.ErrWindowInPast):
				return nil, errs.Mark(err, ErrInvalidWindow)
			default:
				return nil, errs.Mark(err, ErrDomainValidation)
			}
		}

		if err := b.bookingRepo.CreateBatch(ctx, tx, allocation.Bookings); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := b.createPendingPayments(ctx, tx, allocation); err != nil {
			return nil, err
		}

		return allocation, nil
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(allocation.Bookings))
	for i, bk := range allocation.Bookings {
		ids[i] = bk.ID()
	}

	return &CreateBookingResult{
		BookingIDs:      ids,
		AssignedCodes:   allocation.AssignedCodes,
		Status:          booking.StatusPendingRenterApproval.String(),
		UnitPriceCents:  allocation.UnitPriceCents,
		TotalPriceCents: allocation.TotalPriceCents(),
	}, nil
}

// TransitionBooking applies one role-gated status change under a row lock.
// Renters may act only on bookings of their own templates, clients only on
// bookings they created.
func (b *bookingCommandsImpl) TransitionBooking(ctx context.Context, actorID uuid.UUID, actorRole user.Role, bookingID uuid.UUID, next string) error {
	nextStatus, err := booking.NewStatus(next)
	if err != nil {
		return errs.Mark(err, ErrInvalidTransition)
	}

	_, err = shared.RunInTx(ctx, b.db, func(tx db.DBTX) (struct{}, error) {
		bk, err := b.bookingRepo.FindByIDForUpdate(ctx, tx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return struct{}{}, ErrBookingNotFound
			}
			return struct{}{}, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := b.requireParticipant(bk, actorID, actorRole); err != nil {
			return struct{}{}, err
		}

		if err := bk.Transition(nextStatus, actorRole); err != nil {
			return struct{}{}, errs.Mark(err, ErrInvalidTransition)
		}

		if err := b.bookingRepo.UpdateStatus(ctx, tx, bookingID, bk.Status()); err != nil {
			return struct{}{}, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return struct{}{}, nil
	})
	return err
}

// AppendMessage adds one message to the booking's append-only thread.
func (b *bookingCommandsImpl) AppendMessage(ctx context.Context, actorID uuid.UUID, actorRole user.Role, bookingID uuid.UUID, body string) (*booking.Message, error) {
	bk, err := b.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := b.requireParticipant(bk, actorID, actorRole); err != nil {
		return nil, err
	}

	msg, err := booking.NewMessage(bookingID, actorID, body, b.factory.Clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	_, err = shared.RunInTx(ctx, b.db, func(tx db.DBTX) (struct{}, error) {
		return struct{}{}, b.bookingRepo.CreateMessage(ctx, tx, msg)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindForeignKeyViolated) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return msg, nil
}

func (b *bookingCommandsImpl) createPendingPayments(ctx context.Context, tx db.DBTX, allocation *booking.Allocation) error {
	for _, bk := range allocation.Bookings {
		p, err := payment.NewPayment(bk.ID(), bk.PriceCents())
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		if err := b.paymentRepo.Create(ctx, tx, p); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := b.bookingRepo.AttachPayment(ctx, tx, bk.ID(), p.ID()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		bk.AttachPayment(p.ID())
	}
	return nil
}

func (b *bookingCommandsImpl) requireParticipant(bk *booking.Booking, actorID uuid.UUID, actorRole user.Role) error {
	switch actorRole {
	case user.RoleClient:
		if bk.ClientID() != actorID {
			return ErrNotParticipant
		}
	case user.RoleRenter:
		if bk.RenterID() != actorID {
			return ErrNotParticipant
		}
	case user.RoleAdmin:
		// Admins may inspect any booking; the transition table still
		// rejects status changes from them.
	default:
		return ErrNotParticipant
	}
	return nil
}
