package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromPassesThroughAppErrors(t *testing.T) {
	err := New(http.StatusConflict, "INVALID_STATUS", "advance is not in PENDING status")
	got := From(err)
	assert.Equal(t, http.StatusConflict, got.Status)
	assert.Equal(t, "INVALID_STATUS", got.Code)
}

func TestFromUnwrapsWrappedErrors(t *testing.T) {
	inner := NotFound("ADVANCE_NOT_FOUND", "advance not found")
	wrapped := fmt.Errorf("approve advance: %w", inner)
	got := From(wrapped)
	assert.Equal(t, http.StatusNotFound, got.Status)
	assert.Equal(t, "ADVANCE_NOT_FOUND", got.Code)
}

// Raw database errors must not leak to the client.
func TestFromHidesUnknownErrors(t *testing.T) {
	got := From(errors.New(`ERROR: duplicate key value violates unique constraint "farmers_phone_key"`))
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Equal(t, "INTERNAL_ERROR", got.Code)
	assert.Equal(t, "internal server error", got.Message)
}

func TestBadRequest(t *testing.T) {
	err := BadRequest("VALIDATION", "quantity must be positive")
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "quantity must be positive", err.Error())
}
