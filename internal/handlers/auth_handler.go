package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

// AuthHandler handles customer and admin sign in
type AuthHandler struct {
	logger *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(logger *slog.Logger) *AuthHandler {
	return &AuthHandler{logger: logger}
}

// MessageResponse carries a user facing message
type MessageResponse struct {
	Message string `json:"message"`
}

// Session handles GET /api/session
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, currentSession(r).Account.Status(), h.logger)
}

// Register handles POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warn("failed to decode register request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if err := currentSession(r).Account.Register(r.Context(), req); err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusCreated, MessageResponse{Message: "Registration successful! Please log in."}, h.logger)
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warn("failed to decode login request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	s := currentSession(r)
	if err := s.Account.Login(r.Context(), req); err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, s.Account.Status(), h.logger)
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	s := currentSession(r)
	s.Account.Logout()
	WriteJSON(w, http.StatusOK, s.Account.Status(), h.logger)
}

// AdminLogin handles POST /api/admin/login
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warn("failed to decode admin login request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	msg, err := currentSession(r).Account.AdminLogin(r.Context(), req)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, msg, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, MessageResponse{Message: msg}, h.logger)
}

// AdminLogout handles POST /api/admin/logout; requires X-Confirm
func (h *AuthHandler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	s := currentSession(r)
	if err := s.Account.AdminLogout(r.Context(), confirmation(r)); err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, s.Account.Status(), h.logger)
}
