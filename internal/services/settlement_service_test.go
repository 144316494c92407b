package services

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flower-backend/internal/apperr"
	"flower-backend/internal/repositories"
)

// The generator's failure codes are part of the fixed UI contract: both the
// overlap rejection and the empty-period rejection are 400s.
func TestMapGenerateErr(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"overlapping period", repositories.ErrOverlappingPeriod, "OVERLAPPING_PERIOD", http.StatusBadRequest},
		{"no eligible entries", repositories.ErrNoEligibleEntries, "NO_ENTRIES", http.StatusBadRequest},
		{"wrapped overlap", fmt.Errorf("generate: %w", repositories.ErrOverlappingPeriod), "OVERLAPPING_PERIOD", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapGenerateErr(tt.err)
			var ae *apperr.Error
			require.ErrorAs(t, got, &ae)
			assert.Equal(t, tt.wantCode, ae.Code)
			assert.Equal(t, tt.wantStatus, ae.Status)
		})
	}
}

func TestMapGenerateErrPassesThroughUnknown(t *testing.T) {
	sentinel := errors.New("connection reset")
	assert.Equal(t, sentinel, mapGenerateErr(sentinel))
}
