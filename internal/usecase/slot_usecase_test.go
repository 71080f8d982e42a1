package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/healthfirst/scheduling-service/internal/delivery/dto"
	"github.com/healthfirst/scheduling-service/internal/domain/entity"
	"github.com/healthfirst/scheduling-service/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slotFixture struct {
	usecase     *slotUsecase
	patternRepo *fakePatternRepo
	slotRepo    *fakeSlotRepo
	audit       *fakeAuditService
}

func newSlotFixture(t *testing.T) *slotFixture {
	t.Helper()
	f := &slotFixture{
		patternRepo: &fakePatternRepo{},
		slotRepo:    &fakeSlotRepo{},
		audit:       &fakeAuditService{},
	}
	u := NewSlotUsecase(testDB(), testLogger(), f.patternRepo, f.slotRepo, f.audit).(*slotUsecase)
	u.inTx = passthroughTx
	f.usecase = u
	return f
}

func TestMaterializeInsertsGeneratedSlots(t *testing.T) {
	f := newSlotFixture(t)
	providerID := uuid.New()
	monday := 1
	f.patternRepo.findActiveByProviderFn = func(id uuid.UUID) ([]entity.AvailabilityPattern, error) {
		return []entity.AvailabilityPattern{{
			ID:                  uuid.New(),
			ProviderID:          providerID,
			DayOfWeek:           &monday,
			StartTime:           "09:00",
			EndTime:             "11:00",
			SlotDurationMinutes: 30,
		}}, nil
	}

	var inserted []entity.Slot
	f.slotRepo.insertMissingFn = func(slots []entity.Slot) (int64, error) {
		inserted = slots
		// Pretend one row already existed.
		return int64(len(slots) - 1), nil
	}

	// One Monday in range, four half-hour slots.
	got, err := f.usecase.Materialize(context.Background(), providerID, &dto.MaterializeSlotsRequest{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-08",
	}, uuid.New())
	require.NoError(t, err)

	assert.Len(t, inserted, 4)
	assert.Equal(t, int64(4), got.Generated)
	assert.Equal(t, int64(3), got.Inserted)
	assert.Equal(t, int64(1), got.Skipped)
	require.Len(t, f.audit.records, 1)
	assert.Equal(t, entity.AuditActionSlotMaterialize, f.audit.records[0].action)
}

func TestMaterializeRejectsBadRanges(t *testing.T) {
	f := newSlotFixture(t)

	_, err := f.usecase.Materialize(context.Background(), uuid.New(), &dto.MaterializeSlotsRequest{
		StartDate: "2026-03-08",
		EndDate:   "2026-03-02",
	}, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = f.usecase.Materialize(context.Background(), uuid.New(), &dto.MaterializeSlotsRequest{
		StartDate: "2026-01-01",
		EndDate:   "2026-12-31",
	}, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestListAvailable(t *testing.T) {
	f := newSlotFixture(t)
	providerID := uuid.New()
	f.slotRepo.findAvailableFn = func(id uuid.UUID, date time.Time) ([]entity.Slot, error) {
		assert.Equal(t, providerID, id)
		assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), date)
		return []entity.Slot{
			{ID: uuid.New(), ProviderID: providerID, SlotDate: date, StartTime: "09:00", EndTime: "09:30"},
		}, nil
	}

	got, err := f.usecase.ListAvailable(context.Background(), providerID, "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Total)
	assert.Equal(t, "09:00", got.Slots[0].StartTime)
}

func TestListAvailableRejectsBadDate(t *testing.T) {
	f := newSlotFixture(t)

	_, err := f.usecase.ListAvailable(context.Background(), uuid.New(), "03/02/2026")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestSetBlockedSuccess(t *testing.T) {
	f := newSlotFixture(t)
	slotID := uuid.New()
	f.slotRepo.findByIDFn = func(id uuid.UUID) (*entity.Slot, error) {
		return &entity.Slot{ID: slotID, ProviderID: uuid.New()}, nil
	}

	got, err := f.usecase.SetBlocked(context.Background(), slotID, true, uuid.New())
	require.NoError(t, err)
	assert.True(t, got.IsBlocked)
	require.Len(t, f.audit.records, 1)
	assert.Equal(t, entity.AuditActionSlotBlock, f.audit.records[0].action)
}

func TestSetBlockedRefusesBookedSlot(t *testing.T) {
	f := newSlotFixture(t)
	f.slotRepo.findByIDFn = func(id uuid.UUID) (*entity.Slot, error) {
		return &entity.Slot{ID: id, IsBooked: true}, nil
	}

	_, err := f.usecase.SetBlocked(context.Background(), uuid.New(), true, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestSetBlockedNotFound(t *testing.T) {
	f := newSlotFixture(t)

	_, err := f.usecase.SetBlocked(context.Background(), uuid.New(), true, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestSetBlockedLostRace(t *testing.T) {
	f := newSlotFixture(t)
	f.slotRepo.findByIDFn = func(id uuid.UUID) (*entity.Slot, error) {
		return &entity.Slot{ID: id}, nil
	}
	f.slotRepo.setBlockedFn = func(id uuid.UUID, blocked bool) (int64, error) {
		return 0, nil
	}

	_, err := f.usecase.SetBlocked(context.Background(), uuid.New(), true, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}
