package repository

import (
	"github.com/healthfirst/scheduling-service/internal/domain/entity"
	domainRepo "github.com/healthfirst/scheduling-service/internal/domain/repository"

	"gorm.io/gorm"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(db *gorm.DB, log *entity.AuditLog) error {
	return db.Create(log).Error
}

func (r *auditLogRepository) FindAll(db *gorm.DB, limit int) ([]entity.AuditLog, error) {
	if limit < 1 {
		limit = 100
	}
	var logs []entity.AuditLog
	err := db.Order("created_at DESC").Limit(limit).Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *auditLogRepository) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	var log entity.AuditLog
	err := db.Find(&log, id).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}
