package handlers

import (
	"net/http"

	"flower-backend/internal/middleware"
	"flower-backend/internal/models"
	"flower-backend/internal/services"
	"flower-backend/pkg/utils"
)

type AuthHandler struct {
	Users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.Users.Login(r.Context(), &req)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, resp, "login successful")
}

// Signup creates a staff or admin account. Admin-only.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.Users.Signup(r.Context(), &req)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusCreated, user, "user created")
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "not authenticated")
		return
	}

	user, err := h.Users.GetUser(r.Context(), userID)
	if err != nil {
		writeErr(w, err)
		return
	}
	utils.Success(w, http.StatusOK, user, "")
}
