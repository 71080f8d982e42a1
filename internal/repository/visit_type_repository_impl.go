package repository

import (
	"errors"

	"github.com/healthfirst/scheduling-service/internal/domain/entity"
	domainRepo "github.com/healthfirst/scheduling-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type visitTypeRepository struct{}

func NewVisitTypeRepository() domainRepo.VisitTypeRepository {
	return &visitTypeRepository{}
}

func (r *visitTypeRepository) Create(db *gorm.DB, visitType *entity.VisitType) error {
	return db.Create(visitType).Error
}

func (r *visitTypeRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.VisitType, error) {
	var visitType entity.VisitType
	err := db.Where("id = ?", id).First(&visitType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &visitType, nil
}

func (r *visitTypeRepository) FindByName(db *gorm.DB, name string) (*entity.VisitType, error) {
	var visitType entity.VisitType
	err := db.Where("name = ?", name).First(&visitType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &visitType, nil
}

func (r *visitTypeRepository) FindAll(db *gorm.DB) ([]entity.VisitType, error) {
	var visitTypes []entity.VisitType
	err := db.Order("name ASC").Find(&visitTypes).Error
	if err != nil {
		return nil, err
	}
	return visitTypes, nil
}

func (r *visitTypeRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.VisitType{})
	return result.RowsAffected, result.Error
}
