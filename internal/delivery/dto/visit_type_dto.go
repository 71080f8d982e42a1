package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateVisitTypeRequest struct {
	Name                   string          `json:"name" validate:"required,max=100"`
	Description            string          `json:"description" validate:"omitempty"`
	Fee                    decimal.Decimal `json:"fee" validate:"required"`
	DefaultDurationMinutes int             `json:"default_duration_minutes" validate:"required,gte=15,lte=480"`
}

// Response DTOs

type VisitTypeResponse struct {
	ID                     uuid.UUID       `json:"id"`
	Name                   string          `json:"name"`
	Description            string          `json:"description,omitempty"`
	Fee                    decimal.Decimal `json:"fee"`
	DefaultDurationMinutes int             `json:"default_duration_minutes"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

type VisitTypeListResponse struct {
	VisitTypes []VisitTypeResponse `json:"visit_types"`
	Total      int                 `json:"total"`
}
