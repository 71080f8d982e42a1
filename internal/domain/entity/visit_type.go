package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VisitType is a catalog entry for the kinds of appointments a clinic offers.
// An appointment's appointment_type references a catalog entry by name.
type VisitType struct {
	ID                     uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name                   string          `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description            string          `gorm:"type:text"`
	Fee                    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DefaultDurationMinutes int             `gorm:"not null;default:30"`
	CreatedAt              time.Time       `gorm:"autoCreateTime"`
	UpdatedAt              time.Time       `gorm:"autoUpdateTime"`
}

func (VisitType) TableName() string {
	return "visit_types"
}
