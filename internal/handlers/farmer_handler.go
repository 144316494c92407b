package handlers

import (
	"net/http"

	"flower-backend/internal/middleware"
	"flower-backend/internal/models"
	"flower-backend/internal/services"
	"flower-backend/pkg/utils"
)

type FarmerHandler struct {
	Farmers       *services.FarmerService
	Notifications *services.NotificationService
}

func NewFarmerHandler(farmers *services.FarmerService, notifications *services.NotificationService) *FarmerHandler {
	return &FarmerHandler{Farmers: farmers, Notifications: notifications}
}

func (h *FarmerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFarmerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	farmer, err := h.Farmers.CreateFarmer(r.Context(), &req, userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusCreated, farmer, "farmer created")
}

func (h *FarmerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	farmer, err := h.Farmers.GetFarmer(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, farmer, "")
}

func (h *FarmerHandler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage := pageParams(r)

	farmers, total, err := h.Farmers.ListFarmers(r.Context(), page, perPage)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.List(w, farmers, utils.NewPagination(page, perPage, total))
}

func (h *FarmerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.UpdateFarmerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	farmer, err := h.Farmers.UpdateFarmer(r.Context(), id, &req, userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, farmer, "farmer updated")
}

func (h *FarmerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.Farmers.DeleteFarmer(r.Context(), id, userID); err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, nil, "farmer deleted")
}

func (h *FarmerHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ledger, err := h.Farmers.GetLedger(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, ledger, "")
}

// NotificationHistory lists WhatsApp delivery attempts for a farmer.
func (h *FarmerHandler) NotificationHistory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if _, err := h.Farmers.GetFarmer(r.Context(), id); err != nil {
		writeErr(w, err)
		return
	}

	logs, err := h.Notifications.History(r.Context(), id, queryInt(r, "limit"))
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, logs, "")
}
