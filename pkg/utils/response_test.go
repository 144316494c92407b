package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		perPage   int
		total     int
		wantPages int
		wantNext  bool
		wantPrev  bool
	}{
		{"first of many", 1, 20, 45, 3, true, false},
		{"middle page", 2, 20, 45, 3, true, true},
		{"last page", 3, 20, 45, 3, false, true},
		{"exact multiple", 2, 10, 20, 2, false, true},
		{"empty result", 1, 20, 0, 0, false, false},
		{"defaults applied", 0, 0, 5, 1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.perPage, tt.total)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.wantNext, p.HasNext)
			assert.Equal(t, tt.wantPrev, p.HasPrev)
			assert.Equal(t, tt.total, p.Total)
		})
	}
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusCreated, map[string]int{"id": 7}, "created")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "created", body["message"])
	assert.NotNil(t, body["data"])
}

func TestListEnvelopeCarriesPagination(t *testing.T) {
	rec := httptest.NewRecorder()
	List(rec, []string{"a", "b"}, NewPagination(1, 20, 2))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])

	p, ok := body["pagination"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 1, p["page"])
	assert.EqualValues(t, 2, p["total"])
	assert.EqualValues(t, 1, p["total_pages"])
}

func TestErrorBody(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusNotFound, "SETTLEMENT_NOT_FOUND", "settlement not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "SETTLEMENT_NOT_FOUND", body["code"])
	assert.Equal(t, "settlement not found", body["message"])
}
