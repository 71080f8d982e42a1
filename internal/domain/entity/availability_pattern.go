package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BreakInterval is a pause inside a working window, stored as HH:MM strings.
type BreakInterval struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// BreakIntervals is persisted as a jsonb column.
type BreakIntervals []BreakInterval

// Value implements driver.Valuer for GORM jsonb support
func (b BreakIntervals) Value() (driver.Value, error) {
	if len(b) == 0 {
		return "[]", nil
	}
	return json.Marshal(b)
}

// Scan implements sql.Scanner
func (b *BreakIntervals) Scan(value interface{}) error {
	if value == nil {
		*b = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("failed to unmarshal break intervals value:", value))
	}
	return json.Unmarshal(bytes, b)
}

// AvailabilityPattern is a provider's recurring weekly working window for one
// day of week, or a one-off window bound to a specific date. The two variants
// are mutually exclusive: exactly one of DayOfWeek and SpecificDate is set.
//
// At most one active recurring pattern may exist per (provider, day_of_week);
// the partial unique index enforcing that lives in the migrations.
type AvailabilityPattern struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProviderID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"provider_id"`
	DayOfWeek           *int           `gorm:"type:smallint" json:"day_of_week,omitempty"` // 0=Sunday .. 6=Saturday
	SpecificDate        *time.Time     `gorm:"type:date" json:"specific_date,omitempty"`
	StartTime           string         `gorm:"type:time;not null" json:"start_time"`
	EndTime             string         `gorm:"type:time;not null" json:"end_time"`
	SlotDurationMinutes int            `gorm:"not null" json:"slot_duration_minutes"`
	BreakIntervals      BreakIntervals `gorm:"type:jsonb" json:"break_intervals,omitempty"`
	IsActive            bool           `gorm:"not null;default:true" json:"is_active"`
	Timezone            string         `gorm:"type:varchar(64);not null" json:"timezone"` // IANA label, stored verbatim
	CreatedAt           time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AvailabilityPattern) TableName() string {
	return "availability_patterns"
}

// IsRecurring reports whether the pattern repeats weekly rather than binding
// to a single date.
func (p *AvailabilityPattern) IsRecurring() bool {
	return p.DayOfWeek != nil
}

// AppliesTo reports whether the pattern generates slots for the given
// calendar date.
func (p *AvailabilityPattern) AppliesTo(date time.Time) bool {
	if p.SpecificDate != nil {
		return sameDate(*p.SpecificDate, date)
	}
	if p.DayOfWeek != nil {
		return int(date.Weekday()) == *p.DayOfWeek
	}
	return false
}

func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
