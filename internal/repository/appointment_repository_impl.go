package repository

import (
	"errors"

	"time"

	"github.com/healthfirst/scheduling-service/internal/domain/entity"
	domainRepo "github.com/healthfirst/scheduling-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// FindFirstOverlapping uses the half-open interval test: back-to-back
// appointments where one ends exactly when the next starts do not conflict.
func (r *appointmentRepository) FindFirstOverlapping(db *gorm.DB, providerID uuid.UUID, date time.Time, startTime, endTime string) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("provider_id = ? AND appointment_date = ? AND status NOT IN ?",
		providerID, date, []entity.AppointmentStatus{entity.AppointmentStatusCancelled, entity.AppointmentStatusNoShow}).
		Where("start_time < ? AND end_time > ?", endTime, startTime).
		Order("start_time ASC").
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// UpdateStatusFrom applies the status change only while the row still holds
// fromStatus. Affected rows: 1 = success, 0 = lost the race or illegal
// (prevents double-cancel and interleaved transitions).
func (r *appointmentRepository) UpdateStatusFrom(db *gorm.DB, id uuid.UUID, fromStatus entity.AppointmentStatus, update domainRepo.StatusUpdate) (int64, error) {
	values := map[string]interface{}{
		"status": update.Status,
	}
	if update.CancellationReason != nil {
		values["cancellation_reason"] = *update.CancellationReason
	}
	if update.CancelledBy != nil {
		values["cancelled_by"] = *update.CancelledBy
	}
	if update.CancelledAt != nil {
		values["cancelled_at"] = *update.CancelledAt
	}
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(values)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) FindWithFilter(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	query := db.Model(&entity.Appointment{})

	if filter != nil {
		if filter.ProviderID != nil {
			query = query.Where("provider_id = ?", *filter.ProviderID)
		}
		if filter.PatientID != nil {
			query = query.Where("patient_id = ?", *filter.PatientID)
		}
		if filter.Status != nil {
			query = query.Where("status = ?", *filter.Status)
		}
		if filter.StartDate != "" {
			query = query.Where("appointment_date >= ?", filter.StartDate)
		}
		if filter.EndDate != "" {
			query = query.Where("appointment_date <= ?", filter.EndDate)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appointments []entity.Appointment
	// Sort order is fixed so pagination stays deterministic.
	query = query.Order("appointment_date ASC, start_time ASC")
	if filter != nil {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize())
	}
	if err := query.Find(&appointments).Error; err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}
