package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/quantity"
	"github.com/go-chi/chi/v5"
)

// QuantityHandler drives the per-item quantity controls
type QuantityHandler struct {
	logger *slog.Logger
}

// NewQuantityHandler creates a new quantity handler
func NewQuantityHandler(logger *slog.Logger) *QuantityHandler {
	return &QuantityHandler{logger: logger}
}

func (h *QuantityHandler) control(r *http.Request) (*quantity.Control, error) {
	return currentSession(r).Board.Mount(r.Context(), chi.URLParam(r, "id"))
}

// Get handles GET /api/items/{id}/quantity
func (h *QuantityHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.control(r)
	if err != nil {
		// the control falls back to 0 and a notice is queued
		h.logger.Warn("quantity reconcile failed", "food_id", chi.URLParam(r, "id"), "error", err)
	}
	WriteJSON(w, http.StatusOK, c.View(), h.logger)
}

// Increment handles POST /api/items/{id}/increment
func (h *QuantityHandler) Increment(w http.ResponseWriter, r *http.Request) {
	h.change(w, r, (*quantity.Control).Increment)
}

// Decrement handles POST /api/items/{id}/decrement
func (h *QuantityHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	h.change(w, r, (*quantity.Control).Decrement)
}

// change answers 202: the push to the backend continues after the response
func (h *QuantityHandler) change(w http.ResponseWriter, r *http.Request, op func(*quantity.Control) (quantity.View, error)) {
	c, err := h.control(r)
	if err != nil {
		h.logger.Warn("quantity reconcile failed", "food_id", chi.URLParam(r, "id"), "error", err)
	}

	view, err := op(c)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusAccepted, view, h.logger)
}
