package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCheckedIn AppointmentStatus = "checked-in"
	AppointmentStatusInExam    AppointmentStatus = "in-exam"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no-show"
)

// CancelActor identifies who cancelled an appointment
type CancelActor string

const (
	CancelActorPatient  CancelActor = "patient"
	CancelActorProvider CancelActor = "provider"
	CancelActorSystem   CancelActor = "system"
)

// appointmentTransitions is the allowed forward-transition table. Cancellation
// is handled separately: any non-terminal state may move to cancelled. The
// table is data rather than code so the product policy (e.g. whether a
// scheduled appointment may complete directly) can change in one place.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusScheduled: {AppointmentStatusConfirmed, AppointmentStatusNoShow},
	AppointmentStatusConfirmed: {AppointmentStatusCheckedIn, AppointmentStatusNoShow},
	AppointmentStatusCheckedIn: {AppointmentStatusInExam},
	AppointmentStatusInExam:    {AppointmentStatusCompleted},
}

// Appointment is the authoritative booking record. For one provider, the
// intervals of all appointments outside {cancelled, no-show} are pairwise
// non-overlapping; the booking path and the exclusion constraint in the
// migrations both enforce it. Appointments are never physically deleted.
type Appointment struct {
	ID                 uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	ProviderID         uuid.UUID         `gorm:"type:uuid;not null;index:idx_appointments_provider_date" json:"provider_id"`
	AppointmentDate    time.Time         `gorm:"type:date;not null;index:idx_appointments_provider_date" json:"appointment_date"`
	StartTime          string            `gorm:"type:time;not null" json:"start_time"`
	EndTime            string            `gorm:"type:time;not null" json:"end_time"`
	DurationMinutes    int               `gorm:"not null" json:"duration_minutes"`
	Status             AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	AppointmentType    string            `gorm:"type:varchar(100);not null" json:"appointment_type"`
	ReasonForVisit     string            `gorm:"type:text;not null" json:"reason_for_visit"`
	Notes              string            `gorm:"type:text" json:"notes,omitempty"`
	CancellationReason *string           `gorm:"type:text" json:"cancellation_reason,omitempty"`
	CancelledBy        *CancelActor      `gorm:"type:varchar(20)" json:"cancelled_by,omitempty"`
	CancelledAt        *time.Time        `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsTerminal reports whether the status admits no further transitions.
func (s AppointmentStatus) IsTerminal() bool {
	switch s {
	case AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// IsValid reports whether s is a known status value.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed, AppointmentStatusCheckedIn,
		AppointmentStatusInExam, AppointmentStatusCompleted, AppointmentStatusCancelled,
		AppointmentStatusNoShow:
		return true
	}
	return false
}

// IsValid reports whether a is a known cancel actor.
func (a CancelActor) IsValid() bool {
	switch a {
	case CancelActorPatient, CancelActorProvider, CancelActorSystem:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine permits moving from the
// appointment's current status to target. Cancelled is reachable from every
// non-terminal state; everything else follows the transition table.
func (a *Appointment) CanTransitionTo(target AppointmentStatus) bool {
	if a.Status.IsTerminal() {
		return false
	}
	if target == AppointmentStatusCancelled {
		return true
	}
	for _, next := range appointmentTransitions[a.Status] {
		if next == target {
			return true
		}
	}
	return false
}

// IsCancelled checks if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// Counts reports whether the appointment still occupies its interval for
// conflict checking.
func (a *Appointment) Counts() bool {
	return a.Status != AppointmentStatusCancelled && a.Status != AppointmentStatusNoShow
}

// ActiveStatuses returns the statuses that occupy a provider's time, i.e.
// everything outside {cancelled, no-show}.
func ActiveStatuses() []AppointmentStatus {
	return []AppointmentStatus{
		AppointmentStatusScheduled,
		AppointmentStatusConfirmed,
		AppointmentStatusCheckedIn,
		AppointmentStatusInExam,
		AppointmentStatusCompleted,
	}
}
