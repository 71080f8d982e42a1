package usecase

import (
	"testing"
	"time"

	"github.com/healthfirst/scheduling-service/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func slotTimes(slots []entity.Slot) []string {
	times := make([]string, 0, len(slots))
	for _, s := range slots {
		times = append(times, s.StartTime)
	}
	return times
}

func TestGenerateSlotsSkipsBreaks(t *testing.T) {
	monday := 1
	pattern := &entity.AvailabilityPattern{
		ProviderID:          uuid.New(),
		DayOfWeek:           &monday,
		StartTime:           "09:00",
		EndTime:             "12:00",
		SlotDurationMinutes: 30,
		BreakIntervals:      entity.BreakIntervals{{StartTime: "10:00", EndTime: "10:30"}},
	}

	// 2026-03-02 is a Monday.
	slots, err := GenerateSlots(pattern, day(2026, 3, 2), day(2026, 3, 2))
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "10:30", "11:00", "11:30"}, slotTimes(slots))
	for _, s := range slots {
		assert.Equal(t, pattern.ProviderID, s.ProviderID)
		assert.Equal(t, day(2026, 3, 2), s.SlotDate)
		assert.False(t, s.IsBooked)
		assert.False(t, s.IsBlocked)
	}
	assert.Equal(t, "12:00", slots[len(slots)-1].EndTime)
}

func TestGenerateSlotsDiscardsTrailingPartial(t *testing.T) {
	wednesday := 3
	pattern := &entity.AvailabilityPattern{
		ProviderID:          uuid.New(),
		DayOfWeek:           &wednesday,
		StartTime:           "09:00",
		EndTime:             "10:50",
		SlotDurationMinutes: 45,
	}

	// 2026-03-04 is a Wednesday. 09:00-09:45 and 09:45-10:30 fit; the next
	// step would run past 10:50 and must be dropped, not truncated.
	slots, err := GenerateSlots(pattern, day(2026, 3, 4), day(2026, 3, 4))
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:45"}, slotTimes(slots))
}

func TestGenerateSlotsBreakCoversWholeWindow(t *testing.T) {
	monday := 1
	pattern := &entity.AvailabilityPattern{
		ProviderID:          uuid.New(),
		DayOfWeek:           &monday,
		StartTime:           "09:00",
		EndTime:             "12:00",
		SlotDurationMinutes: 30,
		BreakIntervals:      entity.BreakIntervals{{StartTime: "09:00", EndTime: "12:00"}},
	}

	slots, err := GenerateSlots(pattern, day(2026, 3, 2), day(2026, 3, 2))
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlotsRejectsNonPositiveDuration(t *testing.T) {
	monday := 1
	for _, duration := range []int{0, -30} {
		pattern := &entity.AvailabilityPattern{
			ProviderID:          uuid.New(),
			DayOfWeek:           &monday,
			StartTime:           "09:00",
			EndTime:             "12:00",
			SlotDurationMinutes: duration,
		}

		_, err := GenerateSlots(pattern, day(2026, 3, 2), day(2026, 3, 2))
		require.Error(t, err)
	}
}

func TestGenerateSlotsSpansMultipleWeeks(t *testing.T) {
	monday := 1
	pattern := &entity.AvailabilityPattern{
		ProviderID:          uuid.New(),
		DayOfWeek:           &monday,
		StartTime:           "09:00",
		EndTime:             "10:00",
		SlotDurationMinutes: 30,
	}

	// Two Mondays fall inside 2026-03-02 .. 2026-03-10.
	slots, err := GenerateSlots(pattern, day(2026, 3, 2), day(2026, 3, 10))
	require.NoError(t, err)
	require.Len(t, slots, 4)
	assert.Equal(t, day(2026, 3, 2), slots[0].SlotDate)
	assert.Equal(t, day(2026, 3, 9), slots[2].SlotDate)
}

func TestGenerateSlotsOneOffPattern(t *testing.T) {
	date := day(2026, 3, 6)
	pattern := &entity.AvailabilityPattern{
		ProviderID:          uuid.New(),
		SpecificDate:        &date,
		StartTime:           "14:00",
		EndTime:             "15:00",
		SlotDurationMinutes: 15,
	}

	slots, err := GenerateSlots(pattern, day(2026, 3, 1), day(2026, 3, 31))
	require.NoError(t, err)
	require.Len(t, slots, 4)
	for _, s := range slots {
		assert.Equal(t, date, s.SlotDate)
	}
}

func TestGenerateSlotsNoApplicableDays(t *testing.T) {
	sunday := 0
	pattern := &entity.AvailabilityPattern{
		ProviderID:          uuid.New(),
		DayOfWeek:           &sunday,
		StartTime:           "09:00",
		EndTime:             "12:00",
		SlotDurationMinutes: 30,
	}

	// 2026-03-02 .. 2026-03-06 is Monday through Friday.
	slots, err := GenerateSlots(pattern, day(2026, 3, 2), day(2026, 3, 6))
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	tuesday := 2
	pattern := &entity.AvailabilityPattern{
		ProviderID:          uuid.New(),
		DayOfWeek:           &tuesday,
		StartTime:           "08:00",
		EndTime:             "17:00",
		SlotDurationMinutes: 60,
		BreakIntervals:      entity.BreakIntervals{{StartTime: "12:00", EndTime: "13:00"}},
	}

	first, err := GenerateSlots(pattern, day(2026, 3, 1), day(2026, 3, 31))
	require.NoError(t, err)
	second, err := GenerateSlots(pattern, day(2026, 3, 1), day(2026, 3, 31))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
