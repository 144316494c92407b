package handlers

import (
	"net/http"

	"flower-backend/internal/models"
	"flower-backend/internal/repositories"
	"flower-backend/internal/services"
	"flower-backend/pkg/utils"
)

// MasterDataHandler serves flower types, time slots and market rates. These
// are small admin-maintained tables without workflow, so the flower type and
// slot endpoints talk to the repositories directly.
type MasterDataHandler struct {
	FlowerTypes *repositories.FlowerTypeRepository
	TimeSlots   *repositories.TimeSlotRepository
	Rates       *services.RateService
}

func NewMasterDataHandler(flowerTypes *repositories.FlowerTypeRepository, timeSlots *repositories.TimeSlotRepository, rates *services.RateService) *MasterDataHandler {
	return &MasterDataHandler{FlowerTypes: flowerTypes, TimeSlots: timeSlots, Rates: rates}
}

func (h *MasterDataHandler) CreateFlowerType(w http.ResponseWriter, r *http.Request) {
	var ft models.FlowerType
	if !decodeJSON(w, r, &ft) {
		return
	}
	if ft.Name == "" || ft.Unit == "" {
		utils.Error(w, http.StatusBadRequest, "VALIDATION", "name and unit are required")
		return
	}

	if err := h.FlowerTypes.Create(r.Context(), &ft); err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusCreated, ft, "flower type created")
}

func (h *MasterDataHandler) ListFlowerTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.FlowerTypes.List(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, types, "")
}

func (h *MasterDataHandler) DeleteFlowerType(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.FlowerTypes.SoftDelete(r.Context(), id); err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, nil, "flower type deleted")
}

func (h *MasterDataHandler) CreateTimeSlot(w http.ResponseWriter, r *http.Request) {
	var ts models.TimeSlot
	if !decodeJSON(w, r, &ts) {
		return
	}
	if ts.Name == "" || ts.StartTime == "" || ts.EndTime == "" {
		utils.Error(w, http.StatusBadRequest, "VALIDATION", "name, start_time and end_time are required")
		return
	}
	if ts.EndTime <= ts.StartTime {
		utils.Error(w, http.StatusBadRequest, "VALIDATION", "end_time must be after start_time")
		return
	}

	if err := h.TimeSlots.Create(r.Context(), &ts); err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusCreated, ts, "time slot created")
}

func (h *MasterDataHandler) ListTimeSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.TimeSlots.List(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, slots, "")
}

func (h *MasterDataHandler) CreateRate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMarketRateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rate, err := h.Rates.CreateRate(r.Context(), &req)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusCreated, rate, "market rate created")
}

func (h *MasterDataHandler) ListRates(w http.ResponseWriter, r *http.Request) {
	flowerTypeID := queryInt(r, "flower_type_id")
	rates, err := h.Rates.ListRates(r.Context(), flowerTypeID)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, rates, "")
}
