package handler

import (
	"encoding/json"
	"net/http"

	"github.com/healthfirst/scheduling-service/internal/delivery/dto"
	"github.com/healthfirst/scheduling-service/internal/delivery/http/middleware"
	"github.com/healthfirst/scheduling-service/internal/usecase"
	"github.com/healthfirst/scheduling-service/pkg/response"
	"github.com/healthfirst/scheduling-service/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type SlotHandler struct {
	slotUsecase usecase.SlotUsecase
	validator   *validator.CustomValidator
}

func NewSlotHandler(slotUsecase usecase.SlotUsecase, validator *validator.CustomValidator) *SlotHandler {
	return &SlotHandler{
		slotUsecase: slotUsecase,
		validator:   validator,
	}
}

func (h *SlotHandler) Materialize(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	providerID, err := uuid.Parse(vars["providerId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid provider ID", nil)
		return
	}

	var req dto.MaterializeSlotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	result, err := h.slotUsecase.Materialize(r.Context(), providerID, &req, actorID)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Slots materialized successfully", result)
}

func (h *SlotHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	providerID, err := uuid.Parse(vars["providerId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid provider ID", nil)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter date is required", nil)
		return
	}

	slots, err := h.slotUsecase.ListAvailable(r.Context(), providerID, date)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}

func (h *SlotHandler) Block(w http.ResponseWriter, r *http.Request) {
	h.setBlocked(w, r, true, "Slot blocked successfully")
}

func (h *SlotHandler) Unblock(w http.ResponseWriter, r *http.Request) {
	h.setBlocked(w, r, false, "Slot unblocked successfully")
}

func (h *SlotHandler) setBlocked(w http.ResponseWriter, r *http.Request, blocked bool, message string) {
	vars := mux.Vars(r)
	slotID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid slot ID", nil)
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	slot, err := h.slotUsecase.SetBlocked(r.Context(), slotID, blocked, actorID)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, message, slot)
}
