package handlers

import (
	"net/http"

	"flower-backend/internal/middleware"
	"flower-backend/internal/services"
	"flower-backend/pkg/utils"
)

type TOTPHandler struct {
	TOTP *services.TOTPService
}

func NewTOTPHandler(totp *services.TOTPService) *TOTPHandler {
	return &TOTPHandler{TOTP: totp}
}

func (h *TOTPHandler) Setup(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "not authenticated")
		return
	}

	secret, url, err := h.TOTP.Setup(r.Context(), userID)
	if err != nil {
		writeErr(w, err)
		return
	}

	utils.Success(w, http.StatusOK, map[string]string{
		"secret":      secret,
		"otpauth_url": url,
	}, "scan the QR code, then verify")
}

type totpVerifyRequest struct {
	Code string `json:"code"`
}

func (h *TOTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "not authenticated")
		return
	}

	var req totpVerifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.TOTP.Verify(r.Context(), userID, req.Code); err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, nil, "two-factor authentication enabled")
}
