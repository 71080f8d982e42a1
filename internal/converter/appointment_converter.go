package converter

import (
	"github.com/healthfirst/scheduling-service/internal/delivery/dto"
	"github.com/healthfirst/scheduling-service/internal/domain/entity"
	"github.com/healthfirst/scheduling-service/pkg/timeutil"
)

// AppointmentToResponse converts an Appointment entity to its response DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                 appointment.ID,
		PatientID:          appointment.PatientID,
		ProviderID:         appointment.ProviderID,
		AppointmentDate:    appointment.AppointmentDate.Format(timeutil.DateLayout),
		StartTime:          appointment.StartTime,
		EndTime:            appointment.EndTime,
		DurationMinutes:    appointment.DurationMinutes,
		Status:             string(appointment.Status),
		AppointmentType:    appointment.AppointmentType,
		ReasonForVisit:     appointment.ReasonForVisit,
		Notes:              appointment.Notes,
		CancellationReason: appointment.CancellationReason,
		CancelledAt:        appointment.CancelledAt,
		CreatedAt:          appointment.CreatedAt,
		UpdatedAt:          appointment.UpdatedAt,
	}

	if appointment.CancelledBy != nil {
		cancelledBy := string(*appointment.CancelledBy)
		response.CancelledBy = &cancelledBy
	}

	return response
}

// AppointmentsToResponses converts a slice of appointments to response DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
