package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/go-chi/chi/v5"
)

// CartHandler serves the cart page
type CartHandler struct {
	logger *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(logger *slog.Logger) *CartHandler {
	return &CartHandler{logger: logger}
}

// Get handles GET /api/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := currentSession(r).Cart.Load(r.Context())
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, view, h.logger)
}

// Remove handles DELETE /api/cart/{foodId}
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	view, err := currentSession(r).Cart.Remove(r.Context(), chi.URLParam(r, "foodId"))
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, view, h.logger)
}

// BeginCheckout handles POST /api/cart/checkout/begin
func (h *CartHandler) BeginCheckout(w http.ResponseWriter, r *http.Request) {
	view, err := currentSession(r).Cart.BeginCheckout()
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, view, h.logger)
}

// ExitCheckout handles POST /api/cart/checkout/exit; requires X-Confirm
func (h *CartHandler) ExitCheckout(w http.ResponseWriter, r *http.Request) {
	view, err := currentSession(r).Cart.ExitCheckout(r.Context(), confirmation(r))
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, view, h.logger)
}

// Checkout handles POST /api/cart/checkout with the delivery address as body
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var addr models.Address
	if err := decodeJSON(r, &addr); err != nil {
		h.logger.Warn("failed to decode address", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	view, err := currentSession(r).Cart.Checkout(r.Context(), addr)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, view, h.logger)
}
