package service

import (
	"context"

	"github.com/healthfirst/scheduling-service/internal/domain/entity"
	"github.com/healthfirst/scheduling-service/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService writes audit trail rows for scheduling mutations. Callers pass
// the transaction they are running in so the trail commits or rolls back with
// the mutation it describes.
type AuditService interface {
	Record(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action string, metadata entity.JSON) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) Record(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		ActorID:  actorID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log for %s: %+v", action, err)
		return err
	}

	return nil
}
