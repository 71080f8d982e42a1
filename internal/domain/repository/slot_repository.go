package repository

import (
	"time"

	"github.com/healthfirst/scheduling-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SlotRepository interface {
	// InsertMissing inserts candidate slots, skipping any row whose
	// (provider_id, slot_date, start_time) key already exists. Existing
	// booked or blocked slots are never overwritten. Returns the number of
	// rows actually inserted.
	InsertMissing(db *gorm.DB, slots []entity.Slot) (int64, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Slot, error)
	FindAvailable(db *gorm.DB, providerID uuid.UUID, date time.Time) ([]entity.Slot, error)
	// Claim marks every free, unblocked slot whose interval overlaps
	// [startTime, endTime) on the provider's day as booked by the given
	// appointment, so a booking longer than one slot takes all the slots it
	// covers. Returns affected rows: 0 means no matching free slot existed.
	Claim(db *gorm.DB, providerID uuid.UUID, date time.Time, startTime, endTime string, appointmentID uuid.UUID) (int64, error)
	// FindFirstBlockedOverlapping returns the earliest blocked slot on the
	// provider's day whose interval overlaps [startTime, endTime), or nil
	// when none exists.
	FindFirstBlockedOverlapping(db *gorm.DB, providerID uuid.UUID, date time.Time, startTime, endTime string) (*entity.Slot, error)
	// Release frees the slot held by the given appointment, clearing the
	// back-reference. Returns affected rows.
	Release(db *gorm.DB, appointmentID uuid.UUID) (int64, error)
	// SetBlocked toggles the provider block flag. Blocking a booked slot is
	// refused at the query level; 0 affected rows means the slot was absent
	// or booked.
	SetBlocked(db *gorm.DB, id uuid.UUID, blocked bool) (int64, error)
	// DeleteFutureUnbookedMatching removes slots the given pattern would have
	// generated, on or after the given date, that are neither booked nor
	// blocked. Used when an availability pattern is deleted.
	DeleteFutureUnbookedMatching(db *gorm.DB, pattern *entity.AvailabilityPattern, from time.Time) (int64, error)
}
