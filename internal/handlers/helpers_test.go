package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flower-backend/internal/apperr"
)

func TestPageParams(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantPage    int
		wantPerPage int
	}{
		{"defaults", "", 1, 20},
		{"explicit", "page=3&per_page=50", 3, 50},
		{"zero page clamps", "page=0", 1, 20},
		{"negative per_page clamps", "per_page=-5", 1, 20},
		{"per_page capped at 100", "per_page=500", 1, 20},
		{"garbage ignored", "page=abc&per_page=xyz", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/entries?"+tt.query, nil)
			page, perPage := pageParams(r)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPerPage, perPage)
		})
	}
}

func TestPathID(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest("GET", "/api/farmers/17", nil), map[string]string{"id": "17"})
	id, ok := pathID(httptest.NewRecorder(), r)
	require.True(t, ok)
	assert.Equal(t, 17, id)

	rec := httptest.NewRecorder()
	r = mux.SetURLVars(httptest.NewRequest("GET", "/api/farmers/abc", nil), map[string]string{"id": "abc"})
	_, ok = pathID(rec, r)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWriteErrMapsStatusAndCode(t *testing.T) {
	rec := httptest.NewRecorder()
	writeErr(rec, apperr.New(http.StatusConflict, "INVALID_STATUS", "settlement is not in DRAFT status"))

	assert.Equal(t, http.StatusConflict, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_STATUS", body["code"])
	assert.Equal(t, "settlement is not in DRAFT status", body["message"])
}

func TestWriteErrHidesInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	writeErr(rec, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INTERNAL_ERROR", body["code"])
	assert.NotContains(t, body["message"], "pq:")
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/advances?farmer_id=9&status=PENDING", nil)
	assert.Equal(t, 9, queryInt(r, "farmer_id"))
	assert.Equal(t, 0, queryInt(r, "missing"))
	assert.Equal(t, 0, queryInt(r, "status"))

	r = httptest.NewRequest("GET", "/api/advances?farmer_id=-3", nil)
	assert.Equal(t, 0, queryInt(r, "farmer_id"))
}
