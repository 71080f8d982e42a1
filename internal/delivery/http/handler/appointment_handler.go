package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/healthfirst/scheduling-service/internal/delivery/dto"
	"github.com/healthfirst/scheduling-service/internal/delivery/http/middleware"
	"github.com/healthfirst/scheduling-service/internal/domain/entity"
	"github.com/healthfirst/scheduling-service/internal/usecase"
	"github.com/healthfirst/scheduling-service/pkg/response"
	"github.com/healthfirst/scheduling-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	appointment, err := h.appointmentUsecase.Book(r.Context(), &req, actorID)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.CancelAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	appointment, err := h.appointmentUsecase.Cancel(r.Context(), appointmentID, &req, actorID)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", appointment)
}

func (h *AppointmentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.advance(w, r, entity.AppointmentStatusConfirmed, "Appointment confirmed successfully")
}

func (h *AppointmentHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.advance(w, r, entity.AppointmentStatusCheckedIn, "Patient checked in successfully")
}

func (h *AppointmentHandler) StartExam(w http.ResponseWriter, r *http.Request) {
	h.advance(w, r, entity.AppointmentStatusInExam, "Exam started successfully")
}

func (h *AppointmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.advance(w, r, entity.AppointmentStatusCompleted, "Appointment completed successfully")
}

func (h *AppointmentHandler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	h.advance(w, r, entity.AppointmentStatusNoShow, "Appointment marked as no-show")
}

func (h *AppointmentHandler) advance(w http.ResponseWriter, r *http.Request, target entity.AppointmentStatus, message string) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	appointment, err := h.appointmentUsecase.Advance(r.Context(), appointmentID, target, actorID)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, message, appointment)
}

func (h *AppointmentHandler) Query(w http.ResponseWriter, r *http.Request) {
	req, err := parseQueryAppointmentsRequest(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.appointmentUsecase.Query(r.Context(), req)
	if err != nil {
		response.AppError(w, err)
		return
	}

	totalPages := int(result.Total) / result.Limit
	if int(result.Total)%result.Limit > 0 {
		totalPages++
	}
	response.SuccessWithMeta(w, http.StatusOK, "Appointments retrieved successfully", result.Appointments, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		Total:      result.Total,
		TotalPages: totalPages,
	})
}

func parseQueryAppointmentsRequest(r *http.Request) (*dto.QueryAppointmentsRequest, error) {
	q := r.URL.Query()
	req := &dto.QueryAppointmentsRequest{
		Status:    q.Get("status"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}

	if raw := q.Get("provider_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, errInvalidQueryParam("provider_id")
		}
		req.ProviderID = &id
	}
	if raw := q.Get("patient_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, errInvalidQueryParam("patient_id")
		}
		req.PatientID = &id
	}
	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errInvalidQueryParam("page")
		}
		req.Page = page
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errInvalidQueryParam("limit")
		}
		req.Limit = limit
	}

	return req, nil
}

type queryParamError string

func (e queryParamError) Error() string {
	return "Invalid query parameter: " + string(e)
}

func errInvalidQueryParam(name string) error {
	return queryParamError(name)
}
