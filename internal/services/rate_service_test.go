package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flower-backend/internal/models"
)

func testSlots() []models.TimeSlot {
	return []models.TimeSlot{
		{ID: 1, Name: "Morning", StartTime: "04:00:00", EndTime: "09:00:00"},
		{ID: 2, Name: "Afternoon", StartTime: "12:00:00", EndTime: "16:00:00"},
		{ID: 3, Name: "Evening", StartTime: "17:00:00", EndTime: "21:00:00"},
	}
}

func TestMatchTimeSlot(t *testing.T) {
	slots := testSlots()

	tests := []struct {
		name      string
		entryTime string
		wantID    int
	}{
		{"inside first slot", "06:30:00", 1},
		{"start boundary inclusive", "12:00:00", 2},
		{"end boundary inclusive", "16:00:00", 2},
		{"gap falls back to earliest slot", "10:30:00", 1},
		{"before all slots", "02:00:00", 1},
		{"after all slots", "23:00:00", 1},
		{"inside last slot", "19:45:00", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchTimeSlot(slots, tt.entryTime)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestMatchTimeSlotSingleSlot(t *testing.T) {
	slots := []models.TimeSlot{
		{ID: 7, Name: "All day", StartTime: "00:00:00", EndTime: "23:59:59"},
	}
	got := matchTimeSlot(slots, "13:37:00")
	require.NotNil(t, got)
	assert.Equal(t, 7, got.ID)
}
