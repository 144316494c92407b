package handlers

import (
	"fmt"
	"net/http"

	"flower-backend/internal/middleware"
	"flower-backend/internal/models"
	"flower-backend/internal/services"
	"flower-backend/pkg/utils"
)

type SettlementHandler struct {
	Settlements *services.SettlementService
	Reports     *services.ReportService
	TOTP        *services.TOTPService
}

func NewSettlementHandler(settlements *services.SettlementService, reports *services.ReportService, totp *services.TOTPService) *SettlementHandler {
	return &SettlementHandler{Settlements: settlements, Reports: reports, TOTP: totp}
}

func (h *SettlementHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateSettlementRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	settlement, err := h.Settlements.Generate(r.Context(), &req, userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusCreated, settlement, "settlement generated")
}

func (h *SettlementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	settlement, err := h.Settlements.GetSettlement(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, settlement, "")
}

func (h *SettlementHandler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage := pageParams(r)
	farmerID := queryInt(r, "farmer_id")
	status := models.SettlementStatus(r.URL.Query().Get("status"))

	settlements, total, err := h.Settlements.ListSettlements(r.Context(), farmerID, status, page, perPage)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.List(w, settlements, utils.NewPagination(page, perPage, total))
}

func (h *SettlementHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	settlement, err := h.Settlements.Submit(r.Context(), id, userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, settlement, "settlement submitted for approval")
}

func (h *SettlementHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	settlement, err := h.Settlements.Approve(r.Context(), id, userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, settlement, "settlement approved")
}

type payRequest struct {
	TOTPCode string `json:"totp_code"`
}

// Pay requires the admin's second factor when one is enrolled.
func (h *SettlementHandler) Pay(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req payRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.TOTP.Authorize(r.Context(), userID, req.TOTPCode); err != nil {
		writeErr(w, err)
		return
	}

	settlement, err := h.Settlements.Pay(r.Context(), id, userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, settlement, "settlement paid")
}

func (h *SettlementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.Settlements.DeleteDraft(r.Context(), id, userID); err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, nil, "settlement deleted")
}

// Statement streams the settlement's PDF statement.
func (h *SettlementHandler) Statement(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	data, filename, err := h.Reports.SettlementStatement(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	w.Write(data)
}
