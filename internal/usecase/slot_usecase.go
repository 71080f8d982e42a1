package usecase

import (
	"context"
	"time"

	"github.com/healthfirst/scheduling-service/internal/converter"
	"github.com/healthfirst/scheduling-service/internal/delivery/dto"
	"github.com/healthfirst/scheduling-service/internal/domain/entity"
	"github.com/healthfirst/scheduling-service/internal/domain/repository"
	"github.com/healthfirst/scheduling-service/internal/service"
	"github.com/healthfirst/scheduling-service/pkg/apperrors"
	"github.com/healthfirst/scheduling-service/pkg/timeutil"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// maxMaterializeRangeDays caps a single materialization request so a typo in
// the end date cannot flood the slots table.
const maxMaterializeRangeDays = 92

type SlotUsecase interface {
	Materialize(ctx context.Context, providerID uuid.UUID, req *dto.MaterializeSlotsRequest, actorID uuid.UUID) (*dto.MaterializeSlotsResponse, error)
	ListAvailable(ctx context.Context, providerID uuid.UUID, date string) (*dto.SlotListResponse, error)
	SetBlocked(ctx context.Context, slotID uuid.UUID, blocked bool, actorID uuid.UUID) (*dto.SlotResponse, error)
}

type slotUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patternRepo  repository.AvailabilityPatternRepository
	slotRepo     repository.SlotRepository
	auditService service.AuditService
	inTx         func(ctx context.Context, fn func(tx *gorm.DB) error) error
}

func NewSlotUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patternRepo repository.AvailabilityPatternRepository,
	slotRepo repository.SlotRepository,
	auditService service.AuditService,
) SlotUsecase {
	u := &slotUsecase{
		db:           db,
		log:          log,
		patternRepo:  patternRepo,
		slotRepo:     slotRepo,
		auditService: auditService,
	}
	u.inTx = func(ctx context.Context, fn func(tx *gorm.DB) error) error {
		return db.WithContext(ctx).Transaction(fn)
	}
	return u
}

// Materialize expands all of the provider's active patterns over the range
// and inserts only the slots that are missing. Existing rows, booked or
// blocked ones included, are skipped rather than overwritten, so the
// operation is safe to re-run.
func (u *slotUsecase) Materialize(ctx context.Context, providerID uuid.UUID, req *dto.MaterializeSlotsRequest, actorID uuid.UUID) (*dto.MaterializeSlotsResponse, error) {
	startDate, err := timeutil.ParseDate(req.StartDate)
	if err != nil {
		return nil, apperrors.Validation("start_date", err.Error())
	}
	endDate, err := timeutil.ParseDate(req.EndDate)
	if err != nil {
		return nil, apperrors.Validation("end_date", err.Error())
	}
	if endDate.Before(startDate) {
		return nil, apperrors.Validation("end_date", "end_date must not be before start_date")
	}
	if endDate.Sub(startDate) > maxMaterializeRangeDays*24*time.Hour {
		return nil, apperrors.Validation("end_date", "date range is too large to materialize in one request")
	}

	patterns, err := u.patternRepo.FindActiveByProviderID(u.db.WithContext(ctx), providerID)
	if err != nil {
		u.log.Warnf("Failed to load patterns for provider %s: %+v", providerID, err)
		return nil, apperrors.Internal("failed to load availability patterns", err)
	}

	var candidates []entity.Slot
	for i := range patterns {
		generated, err := GenerateSlots(&patterns[i], startDate, endDate)
		if err != nil {
			u.log.Warnf("Failed to generate slots from pattern %s: %+v", patterns[i].ID, err)
			return nil, apperrors.Internal("failed to generate slots", err)
		}
		candidates = append(candidates, generated...)
	}

	var inserted int64
	err = u.inTx(ctx, func(tx *gorm.DB) error {
		inserted, err = u.slotRepo.InsertMissing(tx, candidates)
		if err != nil {
			return err
		}
		return u.auditService.Record(ctx, tx, &actorID, entity.AuditActionSlotMaterialize, entity.JSON{
			"provider_id": providerID.String(),
			"start_date":  req.StartDate,
			"end_date":    req.EndDate,
			"generated":   len(candidates),
			"inserted":    inserted,
		})
	})
	if err != nil {
		u.log.Warnf("Failed to materialize slots for provider %s: %+v", providerID, err)
		return nil, apperrors.Internal("failed to materialize slots", err)
	}

	return &dto.MaterializeSlotsResponse{
		Generated: int64(len(candidates)),
		Inserted:  inserted,
		Skipped:   int64(len(candidates)) - inserted,
	}, nil
}

func (u *slotUsecase) ListAvailable(ctx context.Context, providerID uuid.UUID, date string) (*dto.SlotListResponse, error) {
	day, err := timeutil.ParseDate(date)
	if err != nil {
		return nil, apperrors.Validation("date", err.Error())
	}

	slots, err := u.slotRepo.FindAvailable(u.db.WithContext(ctx), providerID, day)
	if err != nil {
		u.log.Warnf("Failed to list available slots for provider %s: %+v", providerID, err)
		return nil, apperrors.Internal("failed to list available slots", err)
	}

	return &dto.SlotListResponse{
		Slots: converter.SlotsToResponses(slots),
		Total: len(slots),
	}, nil
}

// SetBlocked toggles the provider block flag on a slot. Blocking is refused
// while the slot is booked; a blocked slot is never booked.
func (u *slotUsecase) SetBlocked(ctx context.Context, slotID uuid.UUID, blocked bool, actorID uuid.UUID) (*dto.SlotResponse, error) {
	slot, err := u.slotRepo.FindByID(u.db.WithContext(ctx), slotID)
	if err != nil {
		u.log.Warnf("Failed to find slot %s: %+v", slotID, err)
		return nil, apperrors.Internal("failed to load slot", err)
	}
	if slot == nil {
		return nil, apperrors.NotFound("slot not found")
	}
	if blocked && slot.IsBooked {
		return nil, apperrors.Validation("slot_id", "cannot block a booked slot")
	}

	action := entity.AuditActionSlotBlock
	if !blocked {
		action = entity.AuditActionSlotUnblock
	}

	err = u.inTx(ctx, func(tx *gorm.DB) error {
		affected, err := u.slotRepo.SetBlocked(tx, slotID, blocked)
		if err != nil {
			return err
		}
		if affected == 0 {
			// Lost a race against a concurrent booking.
			return apperrors.Validation("slot_id", "cannot block a booked slot")
		}
		return u.auditService.Record(ctx, tx, &actorID, action, entity.JSON{
			"slot_id":     slotID.String(),
			"provider_id": slot.ProviderID.String(),
		})
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindValidation {
			return nil, err
		}
		u.log.Warnf("Failed to update block flag on slot %s: %+v", slotID, err)
		return nil, apperrors.Internal("failed to update slot", err)
	}

	slot.IsBlocked = blocked
	return converter.SlotToResponse(slot), nil
}
