package handlers

import (
	"net/http"
	"time"

	"flower-backend/internal/middleware"
	"flower-backend/internal/models"
	"flower-backend/internal/services"
	"flower-backend/internal/timeutil"
	"flower-backend/pkg/utils"
)

type EntryHandler struct {
	Entries *services.EntryService
}

func NewEntryHandler(entries *services.EntryService) *EntryHandler {
	return &EntryHandler{Entries: entries}
}

func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	entry, err := h.Entries.CreateEntry(r.Context(), &req, userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusCreated, entry, "entry recorded")
}

// BulkCreate returns 200 with per-item outcomes even when some items fail.
func (h *EntryHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var req models.BulkCreateEntriesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	result, err := h.Entries.BulkCreateEntries(r.Context(), &req, userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, result, "bulk create processed")
}

func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	entry, err := h.Entries.GetEntry(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, entry, "")
}

func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage := pageParams(r)
	farmerID := queryInt(r, "farmer_id")

	var from, to *time.Time
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := timeutil.ParseInIST(timeutil.DateLayout, v)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "VALIDATION", "from must be YYYY-MM-DD")
			return
		}
		from = &t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := timeutil.ParseInIST(timeutil.DateLayout, v)
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "VALIDATION", "to must be YYYY-MM-DD")
			return
		}
		to = &t
	}

	entries, total, err := h.Entries.ListEntries(r.Context(), farmerID, from, to, page, perPage)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.List(w, entries, utils.NewPagination(page, perPage, total))
}

func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.UpdateEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	entry, err := h.Entries.UpdateEntry(r.Context(), id, &req, userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, entry, "entry updated")
}

func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	if err := h.Entries.DeleteEntry(r.Context(), id, userID); err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, nil, "entry deleted")
}
