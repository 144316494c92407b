package handlers

import (
	"net/http"

	"flower-backend/internal/services"
	"flower-backend/pkg/utils"
)

type AuditHandler struct {
	Audit *services.AuditService
}

func NewAuditHandler(audit *services.AuditService) *AuditHandler {
	return &AuditHandler{Audit: audit}
}

// History returns the audit trail for ?entity_type=&entity_id=.
func (h *AuditHandler) History(w http.ResponseWriter, r *http.Request) {
	entityType := r.URL.Query().Get("entity_type")
	entityID := queryInt(r, "entity_id")
	if entityType == "" || entityID == 0 {
		utils.Error(w, http.StatusBadRequest, "VALIDATION", "entity_type and entity_id are required")
		return
	}

	logs, err := h.Audit.History(r.Context(), entityType, entityID, queryInt(r, "limit"))
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, logs, "")
}
