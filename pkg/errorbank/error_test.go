package errorbank

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodePerKind(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, BadRequest("x").StatusCode())
	assert.Equal(t, http.StatusConflict, Conflict("x").StatusCode())
	assert.Equal(t, http.StatusNotFound, NotFound("x").StatusCode())
	assert.Equal(t, http.StatusInternalServerError, Internal("x").StatusCode())
}

func TestErrorIncludesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Internal("failed", WithCause(cause))

	assert.Equal(t, "failed: boom", err.Error())
	assert.True(t, errors.Is(err, cause))
}

func TestFromPassesThroughAppError(t *testing.T) {
	original := Conflict("already exists")

	assert.Same(t, original, From(original))
	assert.Same(t, original, From(fmt.Errorf("wrapped: %w", original)))
}

func TestFromWrapsUnknownError(t *testing.T) {
	cause := errors.New("boom")
	appErr := From(cause)

	require.NotNil(t, appErr)
	assert.Equal(t, KindInternal, appErr.Kind())
	assert.Equal(t, "internal error", appErr.Message())
	assert.True(t, errors.Is(appErr, cause))
}

func TestFromNilIsNil(t *testing.T) {
	assert.Nil(t, From(nil))
}

func TestEmptyMessageFallsBackToKind(t *testing.T) {
	assert.Equal(t, "not_found", NotFound("").Message())
}

func TestWithDetail(t *testing.T) {
	err := BadRequest("invalid", WithDetail("field", "email"))

	require.Contains(t, err.Details(), "field")
	assert.Equal(t, "email", err.Details()["field"])
}
