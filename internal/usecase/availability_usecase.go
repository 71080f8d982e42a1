package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/healthfirst/scheduling-service/internal/converter"
	"github.com/healthfirst/scheduling-service/internal/delivery/dto"
	"github.com/healthfirst/scheduling-service/internal/domain/entity"
	"github.com/healthfirst/scheduling-service/internal/domain/repository"
	"github.com/healthfirst/scheduling-service/internal/integrations/identity"
	"github.com/healthfirst/scheduling-service/internal/service"
	"github.com/healthfirst/scheduling-service/pkg/apperrors"
	"github.com/healthfirst/scheduling-service/pkg/timeutil"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AvailabilityUsecase interface {
	CreatePattern(ctx context.Context, req *dto.CreateAvailabilityRequest, actorID uuid.UUID) (*dto.AvailabilityPatternResponse, error)
	BulkReplace(ctx context.Context, req *dto.BulkReplaceAvailabilityRequest, actorID uuid.UUID) (*dto.AvailabilityPatternListResponse, error)
	GetProviderPatterns(ctx context.Context, providerID uuid.UUID) (*dto.AvailabilityPatternListResponse, error)
	DeletePattern(ctx context.Context, patternID uuid.UUID, actorID uuid.UUID) error
}

type availabilityUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	patternRepo    repository.AvailabilityPatternRepository
	slotRepo       repository.SlotRepository
	identityClient IdentityClient
	auditService   service.AuditService
	inTx           func(ctx context.Context, fn func(tx *gorm.DB) error) error
	now            func() time.Time
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patternRepo repository.AvailabilityPatternRepository,
	slotRepo repository.SlotRepository,
	identityClient IdentityClient,
	auditService service.AuditService,
) AvailabilityUsecase {
	u := &availabilityUsecase{
		db:             db,
		log:            log,
		patternRepo:    patternRepo,
		slotRepo:       slotRepo,
		identityClient: identityClient,
		auditService:   auditService,
		now:            time.Now,
	}
	u.inTx = func(ctx context.Context, fn func(tx *gorm.DB) error) error {
		return db.WithContext(ctx).Transaction(fn)
	}
	return u
}

func (u *availabilityUsecase) CreatePattern(ctx context.Context, req *dto.CreateAvailabilityRequest, actorID uuid.UUID) (*dto.AvailabilityPatternResponse, error) {
	pattern, err := buildPattern(req)
	if err != nil {
		return nil, err
	}

	if err := u.verifyProvider(ctx, req.ProviderID); err != nil {
		return nil, err
	}

	// Recurring patterns: at most one active per (provider, day_of_week).
	// The partial unique index is the arbiter under concurrency; this check
	// just gives a clean error on the common path.
	if pattern.DayOfWeek != nil {
		existing, err := u.patternRepo.FindActiveByProviderDay(u.db.WithContext(ctx), req.ProviderID, *pattern.DayOfWeek)
		if err != nil {
			u.log.Warnf("Failed to check existing pattern: %+v", err)
			return nil, apperrors.Internal("failed to check existing availability", err)
		}
		if existing != nil {
			return nil, apperrors.DuplicatePattern(
				fmt.Sprintf("provider already has an active availability pattern for day %d", *pattern.DayOfWeek))
		}
	}

	err = u.inTx(ctx, func(tx *gorm.DB) error {
		if err := u.patternRepo.Create(tx, pattern); err != nil {
			return err
		}
		return u.auditService.Record(ctx, tx, &actorID, entity.AuditActionAvailabilityCreate, entity.JSON{
			"pattern_id":  pattern.ID.String(),
			"provider_id": pattern.ProviderID.String(),
		})
	})
	if err != nil {
		if isDuplicateKeyError(err, "availability_patterns_provider_day") {
			return nil, apperrors.DuplicatePattern("availability pattern already exists for this provider and day")
		}
		u.log.Warnf("Failed to create availability pattern: %+v", err)
		return nil, apperrors.Internal("failed to create availability pattern", err)
	}

	return converter.PatternToResponse(pattern), nil
}

// BulkReplace atomically swaps out a provider's full pattern set:
// delete-all-then-insert inside one transaction. Future slots the replaced
// patterns generated are pruned the same way DeletePattern prunes them, so
// only booked or blocked rows outlive their pattern.
func (u *availabilityUsecase) BulkReplace(ctx context.Context, req *dto.BulkReplaceAvailabilityRequest, actorID uuid.UUID) (*dto.AvailabilityPatternListResponse, error) {
	// Validate the whole set before any store mutation.
	patterns := make([]entity.AvailabilityPattern, 0, len(req.Patterns))
	seenDays := make(map[int]bool)
	for i := range req.Patterns {
		if req.Patterns[i].ProviderID != req.ProviderID {
			return nil, apperrors.Validation("patterns", "all patterns must belong to the provider being replaced")
		}
		pattern, err := buildPattern(&req.Patterns[i])
		if err != nil {
			return nil, err
		}
		if pattern.DayOfWeek != nil {
			if seenDays[*pattern.DayOfWeek] {
				return nil, apperrors.DuplicatePattern(
					fmt.Sprintf("pattern set contains day %d more than once", *pattern.DayOfWeek))
			}
			seenDays[*pattern.DayOfWeek] = true
		}
		patterns = append(patterns, *pattern)
	}

	if err := u.verifyProvider(ctx, req.ProviderID); err != nil {
		return nil, err
	}

	existing, err := u.patternRepo.FindActiveByProviderID(u.db.WithContext(ctx), req.ProviderID)
	if err != nil {
		u.log.Warnf("Failed to load patterns for provider %s: %+v", req.ProviderID, err)
		return nil, apperrors.Internal("failed to load availability patterns", err)
	}
	today := dateOnly(u.now())

	err = u.inTx(ctx, func(tx *gorm.DB) error {
		if _, err := u.patternRepo.DeleteByProviderID(tx, req.ProviderID); err != nil {
			return err
		}
		var removed int64
		for i := range existing {
			n, err := u.slotRepo.DeleteFutureUnbookedMatching(tx, &existing[i], today)
			if err != nil {
				return err
			}
			removed += n
		}
		if err := u.patternRepo.CreateBatch(tx, patterns); err != nil {
			return err
		}
		return u.auditService.Record(ctx, tx, &actorID, entity.AuditActionAvailabilityReplace, entity.JSON{
			"provider_id":   req.ProviderID.String(),
			"pattern_count": len(patterns),
			"slots_removed": removed,
		})
	})
	if err != nil {
		u.log.Warnf("Failed to replace availability patterns for provider %s: %+v", req.ProviderID, err)
		return nil, apperrors.Internal("failed to replace availability patterns", err)
	}

	return &dto.AvailabilityPatternListResponse{
		Patterns: converter.PatternsToResponses(patterns),
		Total:    len(patterns),
	}, nil
}

func (u *availabilityUsecase) GetProviderPatterns(ctx context.Context, providerID uuid.UUID) (*dto.AvailabilityPatternListResponse, error) {
	patterns, err := u.patternRepo.FindByProviderID(u.db.WithContext(ctx), providerID)
	if err != nil {
		u.log.Warnf("Failed to find patterns for provider %s: %+v", providerID, err)
		return nil, apperrors.Internal("failed to load availability patterns", err)
	}
	return &dto.AvailabilityPatternListResponse{
		Patterns: converter.PatternsToResponses(patterns),
		Total:    len(patterns),
	}, nil
}

// DeletePattern removes the pattern and only the future slots it would have
// generated that are neither booked nor blocked. Booked slots and their
// appointments are left untouched; reconciling them is the caller's choice.
func (u *availabilityUsecase) DeletePattern(ctx context.Context, patternID uuid.UUID, actorID uuid.UUID) error {
	pattern, err := u.patternRepo.FindByID(u.db.WithContext(ctx), patternID)
	if err != nil {
		u.log.Warnf("Failed to find pattern %s: %+v", patternID, err)
		return apperrors.Internal("failed to load availability pattern", err)
	}
	if pattern == nil {
		return apperrors.NotFound("availability pattern not found")
	}

	today := dateOnly(u.now())

	err = u.inTx(ctx, func(tx *gorm.DB) error {
		if _, err := u.patternRepo.Delete(tx, patternID); err != nil {
			return err
		}
		removed, err := u.slotRepo.DeleteFutureUnbookedMatching(tx, pattern, today)
		if err != nil {
			return err
		}
		return u.auditService.Record(ctx, tx, &actorID, entity.AuditActionAvailabilityDelete, entity.JSON{
			"pattern_id":    patternID.String(),
			"provider_id":   pattern.ProviderID.String(),
			"slots_removed": removed,
		})
	})
	if err != nil {
		u.log.Warnf("Failed to delete pattern %s: %+v", patternID, err)
		return apperrors.Internal("failed to delete availability pattern", err)
	}
	return nil
}

func (u *availabilityUsecase) verifyProvider(ctx context.Context, providerID uuid.UUID) error {
	if _, err := u.identityClient.FindProvider(ctx, providerID); err != nil {
		if errors.Is(err, identity.ErrProviderNotFound) {
			return apperrors.NotFound("provider not found")
		}
		u.log.Warnf("Failed to verify provider %s: %+v", providerID, err)
		return apperrors.Internal("failed to verify provider", err)
	}
	return nil
}

// buildPattern applies the semantic rules struct tags cannot express and
// returns a normalized entity ready for insertion.
func buildPattern(req *dto.CreateAvailabilityRequest) (*entity.AvailabilityPattern, error) {
	if (req.DayOfWeek == nil) == (req.SpecificDate == "") {
		return nil, apperrors.Validation("day_of_week", "exactly one of day_of_week and specific_date must be set")
	}

	start, err := timeutil.ParseClock(req.StartTime)
	if err != nil {
		return nil, apperrors.Validation("start_time", err.Error())
	}
	end, err := timeutil.ParseClock(req.EndTime)
	if err != nil {
		return nil, apperrors.Validation("end_time", err.Error())
	}
	if start >= end {
		return nil, apperrors.Validation("start_time", "start_time must be before end_time")
	}

	if req.SlotDurationMinutes%15 != 0 {
		return nil, apperrors.Validation("slot_duration_minutes", "slot duration must be a multiple of 15 minutes")
	}

	breaks := make(entity.BreakIntervals, 0, len(req.BreakIntervals))
	prevEnd := -1
	for i, brk := range req.BreakIntervals {
		brkStart, err := timeutil.ParseClock(brk.StartTime)
		if err != nil {
			return nil, apperrors.Validation("break_intervals", err.Error())
		}
		brkEnd, err := timeutil.ParseClock(brk.EndTime)
		if err != nil {
			return nil, apperrors.Validation("break_intervals", err.Error())
		}
		if brkStart >= brkEnd {
			return nil, apperrors.Validation("break_intervals", fmt.Sprintf("break %d start must be before its end", i))
		}
		if brkStart < start || brkEnd > end {
			return nil, apperrors.Validation("break_intervals", fmt.Sprintf("break %d must lie within the working window", i))
		}
		if brkStart < prevEnd {
			return nil, apperrors.Validation("break_intervals", "break intervals must be ordered and non-overlapping")
		}
		prevEnd = brkEnd
		breaks = append(breaks, entity.BreakInterval{
			StartTime: timeutil.FormatClock(brkStart),
			EndTime:   timeutil.FormatClock(brkEnd),
		})
	}

	pattern := &entity.AvailabilityPattern{
		ProviderID:          req.ProviderID,
		DayOfWeek:           req.DayOfWeek,
		StartTime:           timeutil.FormatClock(start),
		EndTime:             timeutil.FormatClock(end),
		SlotDurationMinutes: req.SlotDurationMinutes,
		BreakIntervals:      breaks,
		IsActive:            true,
		Timezone:            req.Timezone,
	}

	if req.SpecificDate != "" {
		specificDate, err := timeutil.ParseDate(req.SpecificDate)
		if err != nil {
			return nil, apperrors.Validation("specific_date", err.Error())
		}
		pattern.SpecificDate = &specificDate
	}

	return pattern, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
