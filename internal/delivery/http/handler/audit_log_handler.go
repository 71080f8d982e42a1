package handler

import (
	"net/http"
	"strconv"

	"github.com/healthfirst/scheduling-service/internal/usecase"
	"github.com/healthfirst/scheduling-service/pkg/response"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{auditLogUsecase: auditLogUsecase}
}

func (h *AuditLogHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid query parameter: limit", nil)
			return
		}
		limit = parsed
	}

	logs, err := h.auditLogUsecase.List(r.Context(), limit)
	if err != nil {
		response.AppError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", logs)
}
