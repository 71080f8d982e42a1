package usecase

import (
	"fmt"
	"time"

	"github.com/healthfirst/scheduling-service/internal/domain/entity"
	"github.com/healthfirst/scheduling-service/pkg/timeutil"
)

// GenerateSlots expands an availability pattern over [startDate, endDate]
// (inclusive) into candidate slots, not yet persisted. For each day in range
// that the pattern applies to, a cursor walks from the pattern's start time
// to its end time in slot-duration steps; candidates that intersect a break
// are dropped, and a trailing partial interval that would run past the end
// time is discarded rather than truncated.
//
// Output is sorted by (date, start time) and deterministic for identical
// inputs, so re-running generation is idempotent as long as persistence uses
// insert-if-absent semantics.
func GenerateSlots(pattern *entity.AvailabilityPattern, startDate, endDate time.Time) ([]entity.Slot, error) {
	// The cursor below advances by the duration; a non-positive value would
	// never terminate.
	if pattern.SlotDurationMinutes <= 0 {
		return nil, fmt.Errorf("slot duration must be positive, got %d", pattern.SlotDurationMinutes)
	}

	windowStart, err := timeutil.ParseClock(pattern.StartTime)
	if err != nil {
		return nil, err
	}
	windowEnd, err := timeutil.ParseClock(pattern.EndTime)
	if err != nil {
		return nil, err
	}

	breaks, err := parseBreaks(pattern.BreakIntervals)
	if err != nil {
		return nil, err
	}

	var slots []entity.Slot
	for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
		if !pattern.AppliesTo(day) {
			continue
		}
		for cursor := windowStart; cursor+pattern.SlotDurationMinutes <= windowEnd; cursor += pattern.SlotDurationMinutes {
			candidateEnd := cursor + pattern.SlotDurationMinutes
			if intersectsAnyBreak(cursor, candidateEnd, breaks) {
				continue
			}
			slots = append(slots, entity.Slot{
				ProviderID: pattern.ProviderID,
				SlotDate:   day,
				StartTime:  timeutil.FormatClock(cursor),
				EndTime:    timeutil.FormatClock(candidateEnd),
			})
		}
	}
	return slots, nil
}

type breakWindow struct {
	start int
	end   int
}

func parseBreaks(intervals entity.BreakIntervals) ([]breakWindow, error) {
	windows := make([]breakWindow, 0, len(intervals))
	for _, interval := range intervals {
		start, err := timeutil.ParseClock(interval.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := timeutil.ParseClock(interval.EndTime)
		if err != nil {
			return nil, err
		}
		windows = append(windows, breakWindow{start: start, end: end})
	}
	return windows, nil
}

func intersectsAnyBreak(candidateStart, candidateEnd int, breaks []breakWindow) bool {
	for _, brk := range breaks {
		if timeutil.Overlaps(candidateStart, candidateEnd, brk.start, brk.end) {
			return true
		}
	}
	return false
}
