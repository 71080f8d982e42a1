package converter

import (
	"github.com/healthfirst/scheduling-service/internal/delivery/dto"
	"github.com/healthfirst/scheduling-service/internal/domain/entity"
	"github.com/healthfirst/scheduling-service/pkg/timeutil"
)

// SlotToResponse converts a Slot entity to its response DTO
func SlotToResponse(slot *entity.Slot) *dto.SlotResponse {
	if slot == nil {
		return nil
	}
	return &dto.SlotResponse{
		ID:            slot.ID,
		ProviderID:    slot.ProviderID,
		SlotDate:      slot.SlotDate.Format(timeutil.DateLayout),
		StartTime:     slot.StartTime,
		EndTime:       slot.EndTime,
		IsBooked:      slot.IsBooked,
		IsBlocked:     slot.IsBlocked,
		AppointmentID: slot.AppointmentID,
		CreatedAt:     slot.CreatedAt,
	}
}

// SlotsToResponses converts a slice of slots to response DTOs
func SlotsToResponses(slots []entity.Slot) []dto.SlotResponse {
	responses := make([]dto.SlotResponse, len(slots))
	for i := range slots {
		responses[i] = *SlotToResponse(&slots[i])
	}
	return responses
}
