package handlers

import (
	"log/slog"
	"net/http"
)

// OrderHandler serves the customer order history
type OrderHandler struct {
	log *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(log *slog.Logger) *OrderHandler {
	return &OrderHandler{log: log}
}

// List handles GET /api/orders
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := currentSession(r).Orders.List(r.Context())
	if err != nil {
		WriteServiceError(w, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, orders, h.log)
}
