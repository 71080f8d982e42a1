package repository

import (
	"errors"
	"time"

	"github.com/healthfirst/scheduling-service/internal/domain/entity"
	domainRepo "github.com/healthfirst/scheduling-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type slotRepository struct{}

func NewSlotRepository() domainRepo.SlotRepository {
	return &slotRepository{}
}

// InsertMissing relies on ON CONFLICT DO NOTHING against the
// (provider_id, slot_date, start_time) unique index, so re-materializing a
// range never touches slots that already exist, booked or otherwise.
func (r *slotRepository) InsertMissing(db *gorm.DB, slots []entity.Slot) (int64, error) {
	if len(slots) == 0 {
		return 0, nil
	}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "provider_id"}, {Name: "slot_date"}, {Name: "start_time"}},
		DoNothing: true,
	}).Create(&slots)
	return result.RowsAffected, result.Error
}

func (r *slotRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Slot, error) {
	var slot entity.Slot
	err := db.Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) FindAvailable(db *gorm.DB, providerID uuid.UUID, date time.Time) ([]entity.Slot, error) {
	var slots []entity.Slot
	err := db.Where("provider_id = ? AND slot_date = ? AND is_booked = ? AND is_blocked = ?",
		providerID, date, false, false).
		Order("start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// Claim matches on interval overlap, not start time equality: an appointment
// spanning several slots books all of them so none keeps being advertised as
// free.
func (r *slotRepository) Claim(db *gorm.DB, providerID uuid.UUID, date time.Time, startTime, endTime string, appointmentID uuid.UUID) (int64, error) {
	result := db.Model(&entity.Slot{}).
		Where("provider_id = ? AND slot_date = ? AND is_booked = ? AND is_blocked = ?",
			providerID, date, false, false).
		Where("start_time < ? AND end_time > ?", endTime, startTime).
		Updates(map[string]interface{}{
			"is_booked":      true,
			"appointment_id": appointmentID,
		})
	return result.RowsAffected, result.Error
}

func (r *slotRepository) FindFirstBlockedOverlapping(db *gorm.DB, providerID uuid.UUID, date time.Time, startTime, endTime string) (*entity.Slot, error) {
	var slot entity.Slot
	err := db.Where("provider_id = ? AND slot_date = ? AND is_blocked = ?", providerID, date, true).
		Where("start_time < ? AND end_time > ?", endTime, startTime).
		Order("start_time ASC").
		First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *slotRepository) Release(db *gorm.DB, appointmentID uuid.UUID) (int64, error) {
	result := db.Model(&entity.Slot{}).
		Where("appointment_id = ?", appointmentID).
		Updates(map[string]interface{}{
			"is_booked":      false,
			"appointment_id": nil,
		})
	return result.RowsAffected, result.Error
}

func (r *slotRepository) SetBlocked(db *gorm.DB, id uuid.UUID, blocked bool) (int64, error) {
	// A booked slot cannot be blocked; unblocking has no such restriction.
	query := db.Model(&entity.Slot{}).Where("id = ?", id)
	if blocked {
		query = query.Where("is_booked = ?", false)
	}
	result := query.Update("is_blocked", blocked)
	return result.RowsAffected, result.Error
}

// DeleteFutureUnbookedMatching scopes deletion to the slots the pattern
// would have generated: matching weekday (or exact date for one-off
// patterns) and start times inside the pattern's working window.
func (r *slotRepository) DeleteFutureUnbookedMatching(db *gorm.DB, pattern *entity.AvailabilityPattern, from time.Time) (int64, error) {
	query := db.Where("provider_id = ? AND slot_date >= ? AND is_booked = ? AND is_blocked = ?",
		pattern.ProviderID, from, false, false).
		Where("start_time >= ? AND end_time <= ?", pattern.StartTime, pattern.EndTime)

	if pattern.SpecificDate != nil {
		query = query.Where("slot_date = ?", *pattern.SpecificDate)
	} else if pattern.DayOfWeek != nil {
		query = query.Where("EXTRACT(DOW FROM slot_date) = ?", *pattern.DayOfWeek)
	}

	result := query.Delete(&entity.Slot{})
	return result.RowsAffected, result.Error
}
