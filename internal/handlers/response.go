package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/backend"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/quantity"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
)

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}

// ConfirmationResponse is sent with 428 when a destructive action lacks X-Confirm
type ConfirmationResponse struct {
	Error  string         `json:"error"`
	Prompt service.Prompt `json:"prompt"`
}

// WriteServiceError maps a service or backend error to a status code
func WriteServiceError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var confirmErr *service.ConfirmationError
	if errors.As(err, &confirmErr) {
		WriteJSON(w, http.StatusPreconditionRequired, ConfirmationResponse{
			Error:  "Confirmation required",
			Prompt: confirmErr.Prompt,
		}, logger)
		return
	}

	var apiErr *backend.Error
	switch {
	case errors.Is(err, service.ErrSignInRequired),
		errors.Is(err, quantity.ErrSignInRequired):
		WriteError(w, http.StatusUnauthorized, "Please Sign In to Continue", logger)
	case errors.Is(err, service.ErrAdminSignInRequired):
		WriteError(w, http.StatusUnauthorized, "Admin login required", logger)
	case errors.Is(err, backend.ErrUnauthorized):
		WriteError(w, http.StatusUnauthorized, "Session expired, please sign in again", logger)
	case errors.Is(err, service.ErrMissingAddress):
		WriteError(w, http.StatusBadRequest, "Please fill in all delivery details", logger)
	case errors.Is(err, service.ErrEmptyCart):
		WriteError(w, http.StatusBadRequest, "Cart is empty", logger)
	case errors.Is(err, service.ErrInvalidItem):
		WriteError(w, http.StatusBadRequest, "All fields are required", logger)
	case errors.Is(err, service.ErrInvalidPrice):
		WriteError(w, http.StatusBadRequest, "Price must be a positive number", logger)
	case errors.Is(err, service.ErrInvalidStatus):
		WriteError(w, http.StatusBadRequest, "Invalid order status", logger)
	case errors.Is(err, quantity.ErrBusy):
		WriteError(w, http.StatusConflict, "Quantity update already in progress", logger)
	case errors.Is(err, backend.ErrNotFound):
		WriteError(w, http.StatusNotFound, "Not found", logger)
	case errors.Is(err, service.ErrCartNotCleared):
		WriteError(w, http.StatusBadGateway, "Order placed but the cart could not be cleared", logger)
	case errors.As(err, &apiErr):
		msg := apiErr.Message
		if msg == "" {
			msg = "Backend request failed"
		}
		status := http.StatusBadGateway
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			status = apiErr.StatusCode
		}
		WriteError(w, status, msg, logger)
	default:
		logger.Error("unhandled error", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", logger)
	}
}
