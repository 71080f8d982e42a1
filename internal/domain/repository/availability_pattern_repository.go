package repository

import (
	"github.com/healthfirst/scheduling-service/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilityPatternRepository interface {
	Create(db *gorm.DB, pattern *entity.AvailabilityPattern) error
	CreateBatch(db *gorm.DB, patterns []entity.AvailabilityPattern) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.AvailabilityPattern, error)
	FindByProviderID(db *gorm.DB, providerID uuid.UUID) ([]entity.AvailabilityPattern, error)
	FindActiveByProviderID(db *gorm.DB, providerID uuid.UUID) ([]entity.AvailabilityPattern, error)
	FindActiveByProviderDay(db *gorm.DB, providerID uuid.UUID, dayOfWeek int) (*entity.AvailabilityPattern, error)
	DeleteByProviderID(db *gorm.DB, providerID uuid.UUID) (int64, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
