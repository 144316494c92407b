package handlers

import (
	"encoding/json"
	"net/http"

	"flower-backend/internal/health"
)

type HealthHandler struct {
	Checker *health.HealthChecker
}

func NewHealthHandler(checker *health.HealthChecker) *HealthHandler {
	return &HealthHandler{Checker: checker}
}

// Health returns 200 or 503 with the probe payload; this shape is consumed
// by load balancer checks, so it skips the response envelope.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.Checker.Check()

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(status)
}
