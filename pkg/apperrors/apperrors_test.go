package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("start_time", "bad clock")))
	assert.Equal(t, KindSlotConflict, KindOf(SlotConflict("overlap", uuid.New())))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))

	wrapped := fmt.Errorf("booking: %w", NotFound("no such appointment"))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestErrorsIsMatchesByKind(t *testing.T) {
	err := InvalidTransition("cannot cancel twice")
	assert.True(t, errors.Is(err, &Error{Kind: KindInvalidTransition}))
	assert.False(t, errors.Is(err, &Error{Kind: KindNotFound}))
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("query failed", cause)
	assert.ErrorIs(t, err, cause)
}

func TestAsErrorWrapsUnclassified(t *testing.T) {
	plain := errors.New("boom")
	got := AsError(plain)
	assert.Equal(t, KindInternal, got.Kind)
	assert.ErrorIs(t, got, plain)

	classified := Validation("field", "msg")
	assert.Same(t, classified, AsError(classified))
}
