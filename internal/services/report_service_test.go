package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flower-backend/internal/apperr"
	"flower-backend/internal/timeutil"
)

func TestParseRegisterRange(t *testing.T) {
	from, to, err := ParseRegisterRange("2026-03-01", "2026-03-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, timeutil.IST), from)
	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, timeutil.IST), to)
}

func TestParseRegisterRangeDefaultsToCurrentMonth(t *testing.T) {
	from, to, err := ParseRegisterRange("", "")
	require.NoError(t, err)

	now := timeutil.Now()
	assert.Equal(t, 1, from.Day())
	assert.Equal(t, now.Month(), from.Month())
	assert.False(t, to.Before(from))
}

func TestParseRegisterRangeRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
	}{
		{"malformed from", "03/01/2026", "2026-03-31"},
		{"malformed to", "2026-03-01", "yesterday"},
		{"inverted range", "2026-03-31", "2026-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseRegisterRange(tt.from, tt.to)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION", apperr.From(err).Code)
		})
	}
}
