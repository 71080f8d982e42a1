package apperrors

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Kind classifies a rejected operation. Handlers map kinds to HTTP statuses;
// usecases never return a bare boolean for a business-rule failure.
type Kind string

const (
	KindValidation        Kind = "validation_error"
	KindNotFound          Kind = "not_found"
	KindSlotConflict      Kind = "slot_conflict"
	KindInvalidTransition Kind = "invalid_transition"
	KindDuplicatePattern  Kind = "duplicate_pattern"
	KindInternal          Kind = "internal"
)

// Error is the structured failure returned by usecases. Field is set for
// validation failures, ConflictingID for booking conflicts.
type Error struct {
	Kind          Kind
	Message       string
	Field         string
	ConflictingID uuid.UUID
	cause         error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is makes errors.Is match any *Error of the same kind, so callers can test
// categories without comparing messages.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func SlotConflict(message string, conflictingID uuid.UUID) *Error {
	return &Error{Kind: KindSlotConflict, Message: message, ConflictingID: conflictingID}
}

func InvalidTransition(message string) *Error {
	return &Error{Kind: KindInvalidTransition, Message: message}
}

func DuplicatePattern(message string) *Error {
	return &Error{Kind: KindDuplicatePattern, Message: message}
}

func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, cause: cause}
}

// KindOf returns the kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// AsError extracts the *Error from err's chain, wrapping unclassified errors
// as Internal so handlers always have structure to render.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal("unexpected error", err)
}
