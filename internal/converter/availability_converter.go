package converter

import (
	"github.com/healthfirst/scheduling-service/internal/delivery/dto"
	"github.com/healthfirst/scheduling-service/internal/domain/entity"
	"github.com/healthfirst/scheduling-service/pkg/timeutil"
)

// PatternToResponse converts an AvailabilityPattern entity to its response DTO
func PatternToResponse(pattern *entity.AvailabilityPattern) *dto.AvailabilityPatternResponse {
	if pattern == nil {
		return nil
	}

	response := &dto.AvailabilityPatternResponse{
		ID:                  pattern.ID,
		ProviderID:          pattern.ProviderID,
		DayOfWeek:           pattern.DayOfWeek,
		StartTime:           pattern.StartTime,
		EndTime:             pattern.EndTime,
		SlotDurationMinutes: pattern.SlotDurationMinutes,
		IsActive:            pattern.IsActive,
		Timezone:            pattern.Timezone,
		CreatedAt:           pattern.CreatedAt,
		UpdatedAt:           pattern.UpdatedAt,
	}

	if pattern.SpecificDate != nil {
		response.SpecificDate = pattern.SpecificDate.Format(timeutil.DateLayout)
	}

	for _, brk := range pattern.BreakIntervals {
		response.BreakIntervals = append(response.BreakIntervals, dto.BreakIntervalResponse{
			StartTime: brk.StartTime,
			EndTime:   brk.EndTime,
		})
	}

	return response
}

// PatternsToResponses converts a slice of patterns to response DTOs
func PatternsToResponses(patterns []entity.AvailabilityPattern) []dto.AvailabilityPatternResponse {
	responses := make([]dto.AvailabilityPatternResponse, len(patterns))
	for i := range patterns {
		responses[i] = *PatternToResponse(&patterns[i])
	}
	return responses
}
