package converter

import (
	"github.com/healthfirst/scheduling-service/internal/delivery/dto"
	"github.com/healthfirst/scheduling-service/internal/domain/entity"
)

// AuditLogToResponse converts an AuditLog entity to its response DTO
func AuditLogToResponse(log *entity.AuditLog) *dto.AuditLogResponse {
	if log == nil {
		return nil
	}
	return &dto.AuditLogResponse{
		ID:        log.ID,
		ActorID:   log.ActorID,
		Action:    log.Action,
		Metadata:  log.Metadata,
		CreatedAt: log.CreatedAt,
	}
}

// AuditLogsToResponses converts a slice of audit logs to response DTOs
func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, len(logs))
	for i := range logs {
		responses[i] = *AuditLogToResponse(&logs[i])
	}
	return responses
}
