package usecase

import (
	"context"

	"github.com/healthfirst/scheduling-service/internal/converter"
	"github.com/healthfirst/scheduling-service/internal/delivery/dto"
	"github.com/healthfirst/scheduling-service/internal/domain/repository"
	"github.com/healthfirst/scheduling-service/pkg/apperrors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const defaultAuditLogLimit = 100

type AuditLogUsecase interface {
	List(ctx context.Context, limit int) (*dto.AuditLogListResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(db *gorm.DB, log *logrus.Logger, auditLogRepo repository.AuditLogRepository) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) List(ctx context.Context, limit int) (*dto.AuditLogListResponse, error) {
	if limit < 1 || limit > 1000 {
		limit = defaultAuditLogLimit
	}

	logs, err := u.auditLogRepo.FindAll(u.db.WithContext(ctx), limit)
	if err != nil {
		u.log.Warnf("Failed to list audit logs: %+v", err)
		return nil, apperrors.Internal("failed to list audit logs", err)
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}
