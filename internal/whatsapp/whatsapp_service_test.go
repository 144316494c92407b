package whatsapp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPhoneNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"9876543210", "919876543210"},
		{"+919876543210", "919876543210"},
		{"919876543210", "919876543210"},
		{" 9876543210 ", "919876543210"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatPhoneNumber(tt.in), "input %q", tt.in)
	}
}

func TestAiSensySendTemplateMessage(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := &AiSensyService{
		apiKey:  "test-key",
		baseURL: srv.URL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}

	err := s.SendTemplateMessage("9876543210", "advance_approved", []string{"Ramesh", "5000"})
	require.NoError(t, err)
	assert.Equal(t, "test-key", got["apiKey"])
	assert.Equal(t, "advance_approved", got["campaignName"])
	assert.Equal(t, "919876543210", got["destination"])
}

func TestAiSensySendTemplateMessageAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := &AiSensyService{
		apiKey:  "bad-key",
		baseURL: srv.URL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}

	err := s.SendTemplateMessage("9876543210", "advance_approved", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestMockServiceNeverFails(t *testing.T) {
	s := NewMockService()
	assert.NoError(t, s.SendTemplateMessage("9876543210", "settlement_paid", []string{"x"}))
	assert.Equal(t, "mock", s.GetName())
}
