package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type BookAppointmentRequest struct {
	PatientID       uuid.UUID `json:"patient_id" validate:"required"`
	ProviderID      uuid.UUID `json:"provider_id" validate:"required"`
	AppointmentDate string    `json:"appointment_date" validate:"required,dateonly"` // Format: YYYY-MM-DD
	StartTime       string    `json:"start_time" validate:"required,hhmm"`
	EndTime         string    `json:"end_time" validate:"required,hhmm"`
	AppointmentType string    `json:"appointment_type" validate:"required,max=100"`
	ReasonForVisit  string    `json:"reason_for_visit" validate:"required"`
	Notes           string    `json:"notes" validate:"omitempty"`
}

type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellation_reason" validate:"required"`
	CancelledBy        string `json:"cancelled_by" validate:"required,oneof=patient provider system"`
}

type QueryAppointmentsRequest struct {
	ProviderID *uuid.UUID `json:"provider_id"`
	PatientID  *uuid.UUID `json:"patient_id"`
	Status     string     `json:"status" validate:"omitempty"`
	StartDate  string     `json:"start_date" validate:"omitempty,dateonly"`
	EndDate    string     `json:"end_date" validate:"omitempty,dateonly"`
	Page       int        `json:"page" validate:"omitempty,gte=1"`
	Limit      int        `json:"limit" validate:"omitempty,gte=1,lte=100"`
}

// Response DTOs

type AppointmentResponse struct {
	ID                 uuid.UUID  `json:"id"`
	PatientID          uuid.UUID  `json:"patient_id"`
	ProviderID         uuid.UUID  `json:"provider_id"`
	AppointmentDate    string     `json:"appointment_date"`
	StartTime          string     `json:"start_time"`
	EndTime            string     `json:"end_time"`
	DurationMinutes    int        `json:"duration_minutes"`
	Status             string     `json:"status"`
	AppointmentType    string     `json:"appointment_type"`
	ReasonForVisit     string     `json:"reason_for_visit"`
	Notes              string     `json:"notes,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CancelledBy        *string    `json:"cancelled_by,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
}
