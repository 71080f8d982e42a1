package repository

import (
	"time"

	"github.com/healthfirst/scheduling-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusUpdate carries the optional cancellation fields written alongside a
// status change.
type StatusUpdate struct {
	Status             entity.AppointmentStatus
	CancellationReason *string
	CancelledBy        *entity.CancelActor
	CancelledAt        *time.Time
}

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	// FindFirstOverlapping returns the first non-cancelled, non-no-show
	// appointment for the provider on the date whose half-open interval
	// intersects [startTime, endTime), or nil when none exists.
	FindFirstOverlapping(db *gorm.DB, providerID uuid.UUID, date time.Time, startTime, endTime string) (*entity.Appointment, error)
	// UpdateStatusFrom applies the update only while the row is still in
	// fromStatus, so concurrent transitions cannot interleave. Returns
	// affected rows: 0 means the appointment moved on in the meantime.
	UpdateStatusFrom(db *gorm.DB, id uuid.UUID, fromStatus entity.AppointmentStatus, update StatusUpdate) (int64, error)
	FindWithFilter(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error)
}
