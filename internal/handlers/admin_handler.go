package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
	"github.com/go-chi/chi/v5"
)

// AdminHandler serves the admin panel; routes sit behind middleware.RequireAdmin
type AdminHandler struct {
	logger *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(logger *slog.Logger) *AdminHandler {
	return &AdminHandler{logger: logger}
}

// ListItems handles GET /api/admin/items
func (h *AdminHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := currentSession(r).Admin.ListItems(r.Context())
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, items, h.logger)
}

// AddItem handles POST /api/admin/items
func (h *AdminHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var form service.ItemForm
	if err := decodeJSON(r, &form); err != nil {
		h.logger.Warn("failed to decode item form", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	items, err := currentSession(r).Admin.AddItem(r.Context(), form)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusCreated, items, h.logger)
}

// DeleteItem handles DELETE /api/admin/items/{id}; requires X-Confirm
func (h *AdminHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	items, err := currentSession(r).Admin.DeleteItem(r.Context(), chi.URLParam(r, "id"), confirmation(r))
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, items, h.logger)
}

// ListOrders handles GET /api/admin/orders
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := currentSession(r).Admin.ListOrders(r.Context())
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, orders, h.logger)
}

// UpdateStatus handles PATCH /api/admin/orders/{id}
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.StatusUpdate
	if err := decodeJSON(r, &req); err != nil {
		h.logger.Warn("failed to decode status update", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	orders, err := currentSession(r).Admin.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, orders, h.logger)
}

// CancelOrder handles DELETE /api/admin/orders/{id}; requires X-Confirm
func (h *AdminHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orders, err := currentSession(r).Admin.CancelOrder(r.Context(), chi.URLParam(r, "id"), confirmation(r))
	if err != nil {
		WriteServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, orders, h.logger)
}
