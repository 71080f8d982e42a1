package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/healthfirst/scheduling-service/internal/delivery/dto"
	"github.com/healthfirst/scheduling-service/internal/domain/entity"
	"github.com/healthfirst/scheduling-service/internal/integrations/identity"
	"github.com/healthfirst/scheduling-service/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type availabilityFixture struct {
	usecase        *availabilityUsecase
	patternRepo    *fakePatternRepo
	slotRepo       *fakeSlotRepo
	identityClient *fakeIdentityClient
	audit          *fakeAuditService
}

func newAvailabilityFixture(t *testing.T) *availabilityFixture {
	t.Helper()
	f := &availabilityFixture{
		patternRepo:    &fakePatternRepo{},
		slotRepo:       &fakeSlotRepo{},
		identityClient: &fakeIdentityClient{},
		audit:          &fakeAuditService{},
	}
	u := NewAvailabilityUsecase(
		testDB(), testLogger(),
		f.patternRepo, f.slotRepo, f.identityClient, f.audit,
	).(*availabilityUsecase)
	u.inTx = passthroughTx
	u.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	f.usecase = u
	return f
}

func createPatternRequest() *dto.CreateAvailabilityRequest {
	monday := 1
	return &dto.CreateAvailabilityRequest{
		ProviderID:          uuid.New(),
		DayOfWeek:           &monday,
		StartTime:           "09:00",
		EndTime:             "17:00",
		SlotDurationMinutes: 30,
		BreakIntervals: []dto.BreakIntervalRequest{
			{StartTime: "12:00", EndTime: "13:00"},
		},
		Timezone: "America/New_York",
	}
}

func TestCreatePatternSuccess(t *testing.T) {
	f := newAvailabilityFixture(t)

	var created *entity.AvailabilityPattern
	f.patternRepo.createFn = func(p *entity.AvailabilityPattern) error {
		created = p
		return nil
	}

	got, err := f.usecase.CreatePattern(context.Background(), createPatternRequest(), uuid.New())
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.True(t, created.IsActive)
	assert.Equal(t, "09:00", created.StartTime)
	require.Len(t, created.BreakIntervals, 1)

	require.NotNil(t, got.DayOfWeek)
	assert.Equal(t, 1, *got.DayOfWeek)
	require.Len(t, f.audit.records, 1)
	assert.Equal(t, entity.AuditActionAvailabilityCreate, f.audit.records[0].action)
}

func TestCreatePatternNormalizesClocks(t *testing.T) {
	f := newAvailabilityFixture(t)

	var created *entity.AvailabilityPattern
	f.patternRepo.createFn = func(p *entity.AvailabilityPattern) error {
		created = p
		return nil
	}

	req := createPatternRequest()
	req.StartTime = "9:00"
	req.BreakIntervals = nil

	_, err := f.usecase.CreatePattern(context.Background(), req, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "09:00", created.StartTime)
}

func TestCreatePatternDuplicateDay(t *testing.T) {
	f := newAvailabilityFixture(t)
	f.patternRepo.findActiveByProviderDayFn = func(providerID uuid.UUID, dayOfWeek int) (*entity.AvailabilityPattern, error) {
		return &entity.AvailabilityPattern{ID: uuid.New()}, nil
	}

	_, err := f.usecase.CreatePattern(context.Background(), createPatternRequest(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindDuplicatePattern, apperrors.KindOf(err))
	assert.Empty(t, f.audit.records)
}

func TestCreatePatternUnknownProvider(t *testing.T) {
	f := newAvailabilityFixture(t)
	f.identityClient.findProviderFn = func(id uuid.UUID) (*identity.Provider, error) {
		return nil, identity.ErrProviderNotFound
	}

	_, err := f.usecase.CreatePattern(context.Background(), createPatternRequest(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestCreatePatternValidation(t *testing.T) {
	tests := []struct {
		name string
		edit func(req *dto.CreateAvailabilityRequest)
	}{
		{
			name: "both day and date",
			edit: func(req *dto.CreateAvailabilityRequest) { req.SpecificDate = "2026-03-09" },
		},
		{
			name: "neither day nor date",
			edit: func(req *dto.CreateAvailabilityRequest) { req.DayOfWeek = nil },
		},
		{
			name: "start after end",
			edit: func(req *dto.CreateAvailabilityRequest) {
				req.StartTime = "18:00"
			},
		},
		{
			name: "duration not multiple of 15",
			edit: func(req *dto.CreateAvailabilityRequest) { req.SlotDurationMinutes = 25 },
		},
		{
			name: "break outside window",
			edit: func(req *dto.CreateAvailabilityRequest) {
				req.BreakIntervals = []dto.BreakIntervalRequest{{StartTime: "08:00", EndTime: "09:30"}}
			},
		},
		{
			name: "break start after break end",
			edit: func(req *dto.CreateAvailabilityRequest) {
				req.BreakIntervals = []dto.BreakIntervalRequest{{StartTime: "13:00", EndTime: "12:00"}}
			},
		},
		{
			name: "overlapping breaks",
			edit: func(req *dto.CreateAvailabilityRequest) {
				req.BreakIntervals = []dto.BreakIntervalRequest{
					{StartTime: "12:00", EndTime: "13:00"},
					{StartTime: "12:30", EndTime: "14:00"},
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAvailabilityFixture(t)
			req := createPatternRequest()
			tt.edit(req)

			_, err := f.usecase.CreatePattern(context.Background(), req, uuid.New())
			require.Error(t, err)
			assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		})
	}
}

func TestBulkReplaceSuccess(t *testing.T) {
	f := newAvailabilityFixture(t)
	providerID := uuid.New()

	deleted := false
	f.patternRepo.deleteByProviderFn = func(id uuid.UUID) (int64, error) {
		assert.Equal(t, providerID, id)
		deleted = true
		return 3, nil
	}
	var batch []entity.AvailabilityPattern
	f.patternRepo.createBatchFn = func(patterns []entity.AvailabilityPattern) error {
		batch = patterns
		return nil
	}

	monday, wednesday := 1, 3
	first := createPatternRequest()
	first.ProviderID = providerID
	first.DayOfWeek = &monday
	second := createPatternRequest()
	second.ProviderID = providerID
	second.DayOfWeek = &wednesday

	got, err := f.usecase.BulkReplace(context.Background(), &dto.BulkReplaceAvailabilityRequest{
		ProviderID: providerID,
		Patterns:   []dto.CreateAvailabilityRequest{*first, *second},
	}, uuid.New())
	require.NoError(t, err)

	assert.True(t, deleted)
	assert.Len(t, batch, 2)
	assert.Equal(t, 2, got.Total)
	require.Len(t, f.audit.records, 1)
	assert.Equal(t, entity.AuditActionAvailabilityReplace, f.audit.records[0].action)
}

func TestBulkReplacePrunesReplacedPatternSlots(t *testing.T) {
	f := newAvailabilityFixture(t)
	providerID := uuid.New()
	tuesday, friday := 2, 5
	f.patternRepo.findActiveByProviderFn = func(id uuid.UUID) ([]entity.AvailabilityPattern, error) {
		assert.Equal(t, providerID, id)
		return []entity.AvailabilityPattern{
			{ID: uuid.New(), ProviderID: providerID, DayOfWeek: &tuesday},
			{ID: uuid.New(), ProviderID: providerID, DayOfWeek: &friday},
		}, nil
	}

	var pruned []int
	f.slotRepo.deleteMatchingFn = func(pattern *entity.AvailabilityPattern, from time.Time) (int64, error) {
		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), from)
		pruned = append(pruned, *pattern.DayOfWeek)
		return 4, nil
	}

	monday := 1
	replacement := createPatternRequest()
	replacement.ProviderID = providerID
	replacement.DayOfWeek = &monday

	_, err := f.usecase.BulkReplace(context.Background(), &dto.BulkReplaceAvailabilityRequest{
		ProviderID: providerID,
		Patterns:   []dto.CreateAvailabilityRequest{*replacement},
	}, uuid.New())
	require.NoError(t, err)

	assert.Equal(t, []int{tuesday, friday}, pruned)
	require.Len(t, f.audit.records, 1)
	assert.Equal(t, int64(8), f.audit.records[0].metadata["slots_removed"])
}

func TestBulkReplaceRejectsDuplicateDayInSet(t *testing.T) {
	f := newAvailabilityFixture(t)
	providerID := uuid.New()

	first := createPatternRequest()
	first.ProviderID = providerID
	second := createPatternRequest()
	second.ProviderID = providerID

	_, err := f.usecase.BulkReplace(context.Background(), &dto.BulkReplaceAvailabilityRequest{
		ProviderID: providerID,
		Patterns:   []dto.CreateAvailabilityRequest{*first, *second},
	}, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindDuplicatePattern, apperrors.KindOf(err))
}

func TestBulkReplaceRejectsForeignProvider(t *testing.T) {
	f := newAvailabilityFixture(t)

	pattern := createPatternRequest()
	_, err := f.usecase.BulkReplace(context.Background(), &dto.BulkReplaceAvailabilityRequest{
		ProviderID: uuid.New(),
		Patterns:   []dto.CreateAvailabilityRequest{*pattern},
	}, uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestDeletePatternRemovesFutureUnbookedSlots(t *testing.T) {
	f := newAvailabilityFixture(t)
	patternID := uuid.New()
	monday := 1
	f.patternRepo.findByIDFn = func(id uuid.UUID) (*entity.AvailabilityPattern, error) {
		return &entity.AvailabilityPattern{ID: patternID, ProviderID: uuid.New(), DayOfWeek: &monday}, nil
	}

	var from time.Time
	f.slotRepo.deleteMatchingFn = func(pattern *entity.AvailabilityPattern, f time.Time) (int64, error) {
		from = f
		return 12, nil
	}

	err := f.usecase.DeletePattern(context.Background(), patternID, uuid.New())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), from)
	require.Len(t, f.audit.records, 1)
	assert.Equal(t, entity.AuditActionAvailabilityDelete, f.audit.records[0].action)
	assert.Equal(t, int64(12), f.audit.records[0].metadata["slots_removed"])
}

func TestDeletePatternNotFound(t *testing.T) {
	f := newAvailabilityFixture(t)

	err := f.usecase.DeletePattern(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
