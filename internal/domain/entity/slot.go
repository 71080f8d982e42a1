package entity

import (
	"time"

	"github.com/google/uuid"
)

// Slot is a materialized bookable interval for a provider on a date. Slots
// are a convenience index over availability; the appointment table remains
// authoritative for conflicts. The unique index on (provider_id, slot_date,
// start_time) makes re-materialization idempotent and backs the
// claim-then-verify booking path.
type Slot struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProviderID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_slots_provider_date_start" json:"provider_id"`
	SlotDate      time.Time  `gorm:"type:date;not null;uniqueIndex:idx_slots_provider_date_start" json:"slot_date"`
	StartTime     string     `gorm:"type:time;not null;uniqueIndex:idx_slots_provider_date_start" json:"start_time"`
	EndTime       string     `gorm:"type:time;not null" json:"end_time"`
	IsBooked      bool       `gorm:"not null;default:false;index" json:"is_booked"`
	IsBlocked     bool       `gorm:"not null;default:false" json:"is_blocked"`
	AppointmentID *uuid.UUID `gorm:"type:uuid" json:"appointment_id,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Slot) TableName() string {
	return "slots"
}

// IsAvailable reports whether the slot can still be offered to patients.
func (s *Slot) IsAvailable() bool {
	return !s.IsBooked && !s.IsBlocked
}
