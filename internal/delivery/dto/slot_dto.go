package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type MaterializeSlotsRequest struct {
	StartDate string `json:"start_date" validate:"required,dateonly"` // Format: YYYY-MM-DD
	EndDate   string `json:"end_date" validate:"required,dateonly"`   // Format: YYYY-MM-DD
}

// Response DTOs

type SlotResponse struct {
	ID            uuid.UUID  `json:"id"`
	ProviderID    uuid.UUID  `json:"provider_id"`
	SlotDate      string     `json:"slot_date"`
	StartTime     string     `json:"start_time"`
	EndTime       string     `json:"end_time"`
	IsBooked      bool       `json:"is_booked"`
	IsBlocked     bool       `json:"is_blocked"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}

type MaterializeSlotsResponse struct {
	Generated int64 `json:"generated"`
	Inserted  int64 `json:"inserted"`
	Skipped   int64 `json:"skipped"`
}
