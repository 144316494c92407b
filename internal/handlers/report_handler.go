package handlers

import (
	"fmt"
	"net/http"

	"flower-backend/internal/services"
)

type ReportHandler struct {
	Reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{Reports: reports}
}

// SettlementRegister streams the Excel register for a date range, defaulting
// to the current month.
func (h *ReportHandler) SettlementRegister(w http.ResponseWriter, r *http.Request) {
	from, to, err := services.ParseRegisterRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		writeErr(w, err)
		return
	}

	data, err := h.Reports.SettlementRegister(r.Context(), from, to)
	if err != nil {
		writeErr(w, err)
		return
	}

	filename := fmt.Sprintf("settlements-%s-%s.xlsx", from.Format("20060102"), to.Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	w.Write(data)
}
