package handlers

import (
	"log/slog"
	"net/http"
)

// NotificationHandler hands pending notices to the browser
type NotificationHandler struct {
	logger *slog.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{logger: logger}
}

// Drain handles GET /api/notifications; each notice is delivered once
func (h *NotificationHandler) Drain(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, currentSession(r).Notices.Drain(), h.logger)
}
