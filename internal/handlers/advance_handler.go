package handlers

import (
	"net/http"

	"flower-backend/internal/middleware"
	"flower-backend/internal/models"
	"flower-backend/internal/services"
	"flower-backend/pkg/utils"
)

type AdvanceHandler struct {
	Advances *services.AdvanceService
}

func NewAdvanceHandler(advances *services.AdvanceService) *AdvanceHandler {
	return &AdvanceHandler{Advances: advances}
}

func (h *AdvanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAdvanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	advance, err := h.Advances.CreateAdvance(r.Context(), &req, userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusCreated, advance, "advance requested")
}

func (h *AdvanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	advance, err := h.Advances.GetAdvance(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, advance, "")
}

func (h *AdvanceHandler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage := pageParams(r)
	farmerID := queryInt(r, "farmer_id")
	status := models.AdvanceStatus(r.URL.Query().Get("status"))

	advances, total, err := h.Advances.ListAdvances(r.Context(), farmerID, status, page, perPage)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.List(w, advances, utils.NewPagination(page, perPage, total))
}

func (h *AdvanceHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	advance, err := h.Advances.ApproveAdvance(r.Context(), id, userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, advance, "advance approved")
}

func (h *AdvanceHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	advance, err := h.Advances.RejectAdvance(r.Context(), id, userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, advance, "advance rejected")
}

func (h *AdvanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.UpdateAdvanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	advance, err := h.Advances.UpdateAdvance(r.Context(), id, &req, userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, advance, "advance updated")
}

func (h *AdvanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.Advances.DeleteAdvance(r.Context(), id, userID); err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, nil, "advance deleted")
}
