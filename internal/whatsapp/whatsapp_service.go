package whatsapp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Provider is the outbound WhatsApp API abstraction.
type Provider interface {
	SendTemplateMessage(phone, templateName string, params []string) error
	GetName() string
}

// AiSensyService sends template messages through the AiSensy campaign API.
type AiSensyService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewAiSensyService(apiKey string) *AiSensyService {
	return &AiSensyService{
		apiKey:  apiKey,
		baseURL: "https://backend.aisensy.com/campaign/t1/api/v2",
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *AiSensyService) GetName() string { return "aisensy" }

func (s *AiSensyService) SendTemplateMessage(phone, templateName string, params []string) error {
	payload := map[string]interface{}{
		"apiKey":         s.apiKey,
		"campaignName":   templateName,
		"destination":    formatPhoneNumber(phone),
		"userName":       "Farmer",
		"templateParams": params,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := s.client.Post(s.baseURL, "application/json", bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send whatsapp message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("whatsapp API returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// MockService logs messages instead of sending them, for development and
// environments without an API key.
type MockService struct{}

func NewMockService() *MockService { return &MockService{} }

func (s *MockService) GetName() string { return "mock" }

func (s *MockService) SendTemplateMessage(phone, templateName string, params []string) error {
	log.Printf("[WhatsApp:mock] to=%s template=%s params=%v", phone, templateName, params)
	return nil
}

// formatPhoneNumber prefixes the country code for 10-digit Indian numbers.
func formatPhoneNumber(phone string) string {
	phone = strings.TrimSpace(phone)
	if len(phone) == 10 {
		return "91" + phone
	}
	return strings.TrimPrefix(phone, "+")
}
