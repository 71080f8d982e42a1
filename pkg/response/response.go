package response

import (
	"encoding/json"
	"net/http"

	"github.com/healthfirst/scheduling-service/pkg/apperrors"

	"github.com/google/uuid"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ErrorDetail is the wire shape of a classified error.
type ErrorDetail struct {
	Kind          string `json:"kind"`
	Field         string `json:"field,omitempty"`
	ConflictingID string `json:"conflicting_id,omitempty"`
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	JSON(w, statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SuccessWithMeta(w http.ResponseWriter, statusCode int, message string, data interface{}, meta *Meta) {
	JSON(w, statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

func Error(w http.ResponseWriter, statusCode int, message string, err interface{}) {
	JSON(w, statusCode, Response{
		Success: false,
		Message: message,
		Error:   err,
	})
}

func ValidationError(w http.ResponseWriter, errors interface{}) {
	JSON(w, http.StatusBadRequest, Response{
		Success: false,
		Message: "Validation failed",
		Error:   errors,
	})
}

// AppError maps a classified error to its HTTP status and writes the
// envelope. Unclassified errors are reported as internal without leaking the
// cause to the client.
func AppError(w http.ResponseWriter, err error) {
	appErr := apperrors.AsError(err)

	detail := &ErrorDetail{Kind: string(appErr.Kind)}
	if appErr.Field != "" {
		detail.Field = appErr.Field
	}
	if appErr.ConflictingID != uuid.Nil {
		detail.ConflictingID = appErr.ConflictingID.String()
	}

	message := appErr.Message
	status := statusForKind(appErr.Kind)
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}

	Error(w, status, message, detail)
}

func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindSlotConflict, apperrors.KindDuplicatePattern:
		return http.StatusConflict
	case apperrors.KindInvalidTransition:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	Error(w, http.StatusUnauthorized, message, nil)
}

func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Error(w, http.StatusNotFound, message, nil)
}

func InternalServerError(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Internal server error"
	}
	Error(w, http.StatusInternalServerError, message, nil)
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Forbidden"
	}
	Error(w, http.StatusForbidden, message, nil)
}
