package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInIST(t *testing.T) {
	got, err := ParseInIST(DateLayout, "2026-04-15")
	require.NoError(t, err)
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.April, got.Month())
	assert.Equal(t, 15, got.Day())

	_, offset := got.Zone()
	assert.Equal(t, 5*3600+30*60, offset)
}

func TestStartAndEndOfDay(t *testing.T) {
	// 2026-04-15 20:30 UTC is already 2026-04-16 02:00 in IST.
	utc := time.Date(2026, 4, 15, 20, 30, 0, 0, time.UTC)

	start := StartOfDay(utc)
	assert.Equal(t, 16, start.Day())
	assert.Equal(t, 0, start.Hour())

	end := EndOfDay(utc)
	assert.Equal(t, 16, end.Day())
	assert.Equal(t, 23, end.Hour())
	assert.True(t, end.After(start))
}

func TestFormatIST(t *testing.T) {
	utc := time.Date(2026, 4, 15, 20, 30, 0, 0, time.UTC)
	assert.Equal(t, "2026-04-16", FormatIST(utc, DateLayout))
	assert.Equal(t, "02:00:00", FormatIST(utc, TimeLayout))
}
