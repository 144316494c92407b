package handlers

import (
	"io"
	"net/http"

	"flower-backend/internal/services"
	"flower-backend/pkg/utils"
)

type PaymentHandler struct {
	Payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{Payments: payments}
}

type duesLinkRequest struct {
	SettlementID int `json:"settlement_id"`
}

func (h *PaymentHandler) CreateDuesLink(w http.ResponseWriter, r *http.Request) {
	var req duesLinkRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tx, shortURL, err := h.Payments.CreateDuesLink(r.Context(), req.SettlementID)
	if err != nil {
		writeErr(w, err)
		return
	}

	utils.Success(w, http.StatusCreated, map[string]interface{}{
		"transaction": tx,
		"payment_url": shortURL,
	}, "payment link created")
}

// Webhook verifies the Razorpay signature over the raw body before touching
// anything.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "VALIDATION", "unreadable body")
		return
	}

	signature := r.Header.Get("X-Razorpay-Signature")
	if signature == "" || !h.Payments.VerifyWebhookSignature(body, signature) {
		utils.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid webhook signature")
		return
	}

	if err := h.Payments.HandleWebhook(r.Context(), body); err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, nil, "ok")
}
