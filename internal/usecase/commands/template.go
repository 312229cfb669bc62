package commands

import (
	"context"

	"rentfleet/internal/domain/instance"
	reqdto "rentfleet/internal/handler/dto/request"
	"rentfleet/internal/infra"
	"rentfleet/internal/infra/db"
	"rentfleet/internal/pkg/errs"
	"rentfleet/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrDuplicateTemplateCode = errs.New("template code already in use")
	ErrInstanceNotFound      = errs.New("instance not found")
	ErrNotTemplateOwner      = errs.New("caller does not own the template")
	ErrInvalidInstanceStatus = errs.New("invalid instance status")
)

type TemplateCommands interface {
	CreateTemplate(ctx context.Context, renterID uuid.UUID, req reqdto.CreateTemplateRequest) (uuid.UUID, error)
	UpdateInstanceStatus(ctx context.Context, renterID uuid.UUID, instanceID uuid.UUID, status string) error
}

type templateCommandsImpl struct {
	templateRepo TemplateRepository
	instanceRepo InstanceRepository
	db           *pgxpool.Pool
}

func NewTemplateCommands(templateRepo TemplateRepository, instanceRepo InstanceRepository, db *pgxpool.Pool) TemplateCommands {
	return &templateCommandsImpl{
		templateRepo: templateRepo,
		instanceRepo: instanceRepo,
		db:           db,
	}
}

// CreateTemplate persists the template together with its initial instances
// in one transaction, so a template is never visible without its units.
func (t *templateCommandsImpl) CreateTemplate(ctx context.Context, renterID uuid.UUID, req reqdto.CreateTemplateRequest) (uuid.UUID, error) {
	tmpl, err := req.ToDomain(renterID)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	instances := make([]*instance.Instance, tmpl.TotalCount())
	for n := 1; n <= tmpl.TotalCount(); n++ {
		inst, err := instance.NewInstance(tmpl.ID(), tmpl.InstanceCode(n), nil)
		if err != nil {
			return uuid.Nil, errs.Mark(err, ErrDomainValidation)
		}
		instances[n-1] = inst
	}

	_, err = shared.RunInTx(ctx, t.db, func(tx db.DBTX) (struct{}, error) {
		if err := t.templateRepo.Create(ctx, tx, tmpl); err != nil {
			return struct{}{}, err
		}
		if err := t.instanceRepo.CreateBatch(ctx, tx, instances); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, ErrDuplicateTemplateCode
		}
		return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return tmpl.ID(), nil
}

// UpdateInstanceStatus removes (or restores) a unit from future allocation.
// Existing bookings on the instance are untouched.
func (t *templateCommandsImpl) UpdateInstanceStatus(ctx context.Context, renterID uuid.UUID, instanceID uuid.UUID, status string) error {
	newStatus, err := instance.NewStatus(status)
	if err != nil {
		return errs.Mark(err, ErrInvalidInstanceStatus)
	}

	inst, err := t.instanceRepo.FindByID(ctx, instanceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrInstanceNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	tmpl, err := t.templateRepo.FindByID(ctx, inst.TemplateID())
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if tmpl.RenterID() != renterID {
		return ErrNotTemplateOwner
	}

	_, err = shared.RunInTx(ctx, t.db, func(tx db.DBTX) (struct{}, error) {
		return struct{}{}, t.instanceRepo.UpdateStatus(ctx, tx, instanceID, newStatus)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrInstanceNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
