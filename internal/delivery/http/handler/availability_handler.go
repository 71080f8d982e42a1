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

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

func (h *AvailabilityHandler) CreatePattern(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	pattern, err := h.availabilityUsecase.CreatePattern(r.Context(), &req, actorID)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Availability pattern created successfully", pattern)
}

func (h *AvailabilityHandler) BulkReplace(w http.ResponseWriter, r *http.Request) {
	var req dto.BulkReplaceAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	patterns, err := h.availabilityUsecase.BulkReplace(r.Context(), &req, actorID)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Availability patterns replaced successfully", patterns)
}

func (h *AvailabilityHandler) GetProviderPatterns(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	providerID, err := uuid.Parse(vars["providerId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid provider ID", nil)
		return
	}

	patterns, err := h.availabilityUsecase.GetProviderPatterns(r.Context(), providerID)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Availability patterns retrieved successfully", patterns)
}

func (h *AvailabilityHandler) DeletePattern(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patternID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid pattern ID", nil)
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.availabilityUsecase.DeletePattern(r.Context(), patternID, actorID); err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Availability pattern deleted successfully", nil)
}
