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

type VisitTypeHandler struct {
	visitTypeUsecase usecase.VisitTypeUsecase
	validator        *validator.CustomValidator
}

func NewVisitTypeHandler(visitTypeUsecase usecase.VisitTypeUsecase, validator *validator.CustomValidator) *VisitTypeHandler {
	return &VisitTypeHandler{
		visitTypeUsecase: visitTypeUsecase,
		validator:        validator,
	}
}

func (h *VisitTypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateVisitTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	visitType, err := h.visitTypeUsecase.Create(r.Context(), &req, actorID)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Visit type created successfully", visitType)
}

func (h *VisitTypeHandler) List(w http.ResponseWriter, r *http.Request) {
	visitTypes, err := h.visitTypeUsecase.List(r.Context())
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Visit types retrieved successfully", &dto.VisitTypeListResponse{
		VisitTypes: visitTypes,
		Total:      len(visitTypes),
	})
}

func (h *VisitTypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	visitTypeID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid visit type ID", nil)
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.visitTypeUsecase.Delete(r.Context(), visitTypeID, actorID); err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Visit type deleted successfully", nil)
}
