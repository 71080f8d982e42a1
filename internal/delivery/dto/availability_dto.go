package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type BreakIntervalRequest struct {
	StartTime string `json:"start_time" validate:"required,hhmm"`
	EndTime   string `json:"end_time" validate:"required,hhmm"`
}

type CreateAvailabilityRequest struct {
	ProviderID          uuid.UUID              `json:"provider_id" validate:"required"`
	DayOfWeek           *int                   `json:"day_of_week" validate:"omitempty,gte=0,lte=6"`
	SpecificDate        string                 `json:"specific_date" validate:"omitempty,dateonly"` // Format: YYYY-MM-DD
	StartTime           string                 `json:"start_time" validate:"required,hhmm"`
	EndTime             string                 `json:"end_time" validate:"required,hhmm"`
	SlotDurationMinutes int                    `json:"slot_duration_minutes" validate:"required,gte=15,lte=120"`
	BreakIntervals      []BreakIntervalRequest `json:"break_intervals" validate:"omitempty,dive"`
	Timezone            string                 `json:"timezone" validate:"required,max=64"`
}

type BulkReplaceAvailabilityRequest struct {
	ProviderID uuid.UUID                   `json:"provider_id" validate:"required"`
	Patterns   []CreateAvailabilityRequest `json:"patterns" validate:"required,min=1,dive"`
}

// Response DTOs

type BreakIntervalResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type AvailabilityPatternResponse struct {
	ID                  uuid.UUID               `json:"id"`
	ProviderID          uuid.UUID               `json:"provider_id"`
	DayOfWeek           *int                    `json:"day_of_week,omitempty"`
	SpecificDate        string                  `json:"specific_date,omitempty"`
	StartTime           string                  `json:"start_time"`
	EndTime             string                  `json:"end_time"`
	SlotDurationMinutes int                     `json:"slot_duration_minutes"`
	BreakIntervals      []BreakIntervalResponse `json:"break_intervals,omitempty"`
	IsActive            bool                    `json:"is_active"`
	Timezone            string                  `json:"timezone"`
	CreatedAt           time.Time               `json:"created_at"`
	UpdatedAt           time.Time               `json:"updated_at"`
}

type AvailabilityPatternListResponse struct {
	Patterns []AvailabilityPatternResponse `json:"patterns"`
	Total    int                           `json:"total"`
}
