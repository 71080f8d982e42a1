package converter

import (
	"github.com/healthfirst/scheduling-service/internal/delivery/dto"
	"github.com/healthfirst/scheduling-service/internal/domain/entity"
)

// VisitTypeToResponse converts a VisitType entity to its response DTO
func VisitTypeToResponse(visitType *entity.VisitType) *dto.VisitTypeResponse {
	if visitType == nil {
		return nil
	}
	return &dto.VisitTypeResponse{
		ID:                     visitType.ID,
		Name:                   visitType.Name,
		Description:            visitType.Description,
		Fee:                    visitType.Fee,
		DefaultDurationMinutes: visitType.DefaultDurationMinutes,
		CreatedAt:              visitType.CreatedAt,
		UpdatedAt:              visitType.UpdatedAt,
	}
}

// VisitTypesToResponses converts a slice of visit types to response DTOs
func VisitTypesToResponses(visitTypes []entity.VisitType) []dto.VisitTypeResponse {
	responses := make([]dto.VisitTypeResponse, len(visitTypes))
	for i := range visitTypes {
		responses[i] = *VisitTypeToResponse(&visitTypes[i])
	}
	return responses
}
