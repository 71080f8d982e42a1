package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/healthfirst/scheduling-service/internal/converter"
	"github.com/healthfirst/scheduling-service/internal/delivery/dto"
	"github.com/healthfirst/scheduling-service/internal/domain/entity"
	"github.com/healthfirst/scheduling-service/internal/domain/repository"
	"github.com/healthfirst/scheduling-service/internal/service"
	"github.com/healthfirst/scheduling-service/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type VisitTypeUsecase interface {
	Create(ctx context.Context, req *dto.CreateVisitTypeRequest, actorID uuid.UUID) (*dto.VisitTypeResponse, error)
	List(ctx context.Context) ([]dto.VisitTypeResponse, error)
	Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error
}

type visitTypeUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	visitTypeRepo repository.VisitTypeRepository
	auditService  service.AuditService
	inTx          func(ctx context.Context, fn func(tx *gorm.DB) error) error
}

func NewVisitTypeUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	visitTypeRepo repository.VisitTypeRepository,
	auditService service.AuditService,
) VisitTypeUsecase {
	u := &visitTypeUsecase{
		db:            db,
		log:           log,
		visitTypeRepo: visitTypeRepo,
		auditService:  auditService,
	}
	u.inTx = func(ctx context.Context, fn func(tx *gorm.DB) error) error {
		return db.WithContext(ctx).Transaction(fn)
	}
	return u
}

func (u *visitTypeUsecase) Create(ctx context.Context, req *dto.CreateVisitTypeRequest, actorID uuid.UUID) (*dto.VisitTypeResponse, error) {
	if req.Fee.IsNegative() {
		return nil, apperrors.Validation("fee", "fee cannot be negative")
	}
	if req.DefaultDurationMinutes%15 != 0 {
		return nil, apperrors.Validation("default_duration_minutes", "duration must be a multiple of 15 minutes")
	}

	visitType := &entity.VisitType{
		ID:                     uuid.New(),
		Name:                   req.Name,
		Description:            req.Description,
		DefaultDurationMinutes: req.DefaultDurationMinutes,
		Fee:                    req.Fee,
	}

	err := u.inTx(ctx, func(tx *gorm.DB) error {
		if err := u.visitTypeRepo.Create(tx, visitType); err != nil {
			return err
		}
		return u.auditService.Record(ctx, tx, &actorID, entity.AuditActionVisitTypeCreate, entity.JSON{
			"visit_type_id": visitType.ID.String(),
			"name":          visitType.Name,
		})
	})
	if err != nil {
		if isDuplicateKeyError(err, "idx_visit_types_name") {
			return nil, apperrors.Validation("name", fmt.Sprintf("visit type %q already exists", req.Name))
		}
		u.log.Warnf("Failed to create visit type %q: %+v", req.Name, err)
		return nil, apperrors.Internal("failed to create visit type", err)
	}

	u.log.Infof("Visit type created: id=%s, name=%s", visitType.ID, visitType.Name)
	return converter.VisitTypeToResponse(visitType), nil
}

func (u *visitTypeUsecase) List(ctx context.Context) ([]dto.VisitTypeResponse, error) {
	visitTypes, err := u.visitTypeRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list visit types: %+v", err)
		return nil, apperrors.Internal("failed to list visit types", err)
	}
	return converter.VisitTypesToResponses(visitTypes), nil
}

func (u *visitTypeUsecase) Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	err := u.inTx(ctx, func(tx *gorm.DB) error {
		affected, err := u.visitTypeRepo.Delete(tx, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperrors.NotFound("visit type not found")
		}
		return u.auditService.Record(ctx, tx, &actorID, entity.AuditActionVisitTypeDelete, entity.JSON{
			"visit_type_id": id.String(),
		})
	})
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			return appErr
		}
		u.log.Warnf("Failed to delete visit type %s: %+v", id, err)
		return apperrors.Internal("failed to delete visit type", err)
	}
	return nil
}
