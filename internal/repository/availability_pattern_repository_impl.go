package repository

import (
	"errors"

	"github.com/healthfirst/scheduling-service/internal/domain/entity"
	domainRepo "github.com/healthfirst/scheduling-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type availabilityPatternRepository struct{}

func NewAvailabilityPatternRepository() domainRepo.AvailabilityPatternRepository {
	return &availabilityPatternRepository{}
}

func (r *availabilityPatternRepository) Create(db *gorm.DB, pattern *entity.AvailabilityPattern) error {
	return db.Create(pattern).Error
}

func (r *availabilityPatternRepository) CreateBatch(db *gorm.DB, patterns []entity.AvailabilityPattern) error {
	if len(patterns) == 0 {
		return nil
	}
	return db.Create(&patterns).Error
}

func (r *availabilityPatternRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.AvailabilityPattern, error) {
	var pattern entity.AvailabilityPattern
	err := db.Where("id = ?", id).First(&pattern).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pattern, nil
}

func (r *availabilityPatternRepository) FindByProviderID(db *gorm.DB, providerID uuid.UUID) ([]entity.AvailabilityPattern, error) {
	var patterns []entity.AvailabilityPattern
	err := db.Where("provider_id = ?", providerID).
		Order("day_of_week ASC, specific_date ASC, start_time ASC").
		Find(&patterns).Error
	if err != nil {
		return nil, err
	}
	return patterns, nil
}

func (r *availabilityPatternRepository) FindActiveByProviderID(db *gorm.DB, providerID uuid.UUID) ([]entity.AvailabilityPattern, error) {
	var patterns []entity.AvailabilityPattern
	err := db.Where("provider_id = ? AND is_active = ?", providerID, true).
		Order("day_of_week ASC, specific_date ASC, start_time ASC").
		Find(&patterns).Error
	if err != nil {
		return nil, err
	}
	return patterns, nil
}

func (r *availabilityPatternRepository) FindActiveByProviderDay(db *gorm.DB, providerID uuid.UUID, dayOfWeek int) (*entity.AvailabilityPattern, error) {
	var pattern entity.AvailabilityPattern
	err := db.Where("provider_id = ? AND day_of_week = ? AND is_active = ?", providerID, dayOfWeek, true).
		First(&pattern).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pattern, nil
}

func (r *availabilityPatternRepository) DeleteByProviderID(db *gorm.DB, providerID uuid.UUID) (int64, error) {
	result := db.Where("provider_id = ?", providerID).Delete(&entity.AvailabilityPattern{})
	return result.RowsAffected, result.Error
}

func (r *availabilityPatternRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.AvailabilityPattern{})
	return result.RowsAffected, result.Error
}
