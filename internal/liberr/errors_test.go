// internal/liberr/errors_test.go
package liberr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Conflict_MatchesOnReason(t *testing.T) {
	err := Conflict(ReasonNotAvailable, "book is not available")

	assert.True(t, IsConflict(err, ReasonNotAvailable))
	assert.False(t, IsConflict(err, ReasonHasOverdue))
	assert.False(t, IsConflict(errors.New("plain"), ReasonNotAvailable))
}

func Test_Predicates_SurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("borrow failed: %w", NotFound("book", "b-1"))

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))
}

func Test_Storage_WrapsOnce(t *testing.T) {
	cause := errors.New("connection refused")
	err := Storage("insert book", cause)

	assert.True(t, IsStorage(err))
	assert.ErrorIs(t, err, cause)

	// Re-wrapping returns the original error unchanged.
	again := Storage("outer op", err)
	assert.Same(t, err, again)

	assert.Nil(t, Storage("noop", nil))
}

func Test_ErrorMessages(t *testing.T) {
	assert.Equal(t, "invalid isbn: must not be empty", Validation("isbn", "must not be empty").Error())
	assert.Equal(t, "book b-1 not found", NotFound("book", "b-1").Error())
	assert.Equal(t, "conflict (HAS_OVERDUE): member has overdue books",
		Conflict(ReasonHasOverdue, "member has overdue books").Error())
}
