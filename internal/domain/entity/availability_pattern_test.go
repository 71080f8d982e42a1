package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPatternAppliesTo(t *testing.T) {
	monday := 1
	recurring := &AvailabilityPattern{DayOfWeek: &monday}

	// 2026-03-02 is a Monday.
	assert.True(t, recurring.AppliesTo(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
	assert.False(t, recurring.AppliesTo(time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)))

	date := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	oneOff := &AvailabilityPattern{SpecificDate: &date}
	assert.True(t, oneOff.AppliesTo(time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)))
	assert.False(t, oneOff.AppliesTo(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)))

	assert.True(t, recurring.IsRecurring())
	assert.False(t, oneOff.IsRecurring())
}

func TestBreakIntervalsRoundTrip(t *testing.T) {
	breaks := BreakIntervals{{StartTime: "10:00", EndTime: "10:30"}}
	value, err := breaks.Value()
	assert.NoError(t, err)

	var scanned BreakIntervals
	assert.NoError(t, scanned.Scan(value))
	assert.Equal(t, breaks, scanned)

	var empty BreakIntervals
	assert.NoError(t, empty.Scan(nil))
	assert.Nil(t, empty)
}
