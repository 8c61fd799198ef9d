package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/notify"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/quantity"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
)

// CatalogHandler serves the menu and the food item listing
type CatalogHandler struct {
	logger *slog.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{logger: logger}
}

// CatalogResponse pairs the listed items with their quantity controls
type CatalogResponse struct {
	Items      []models.FoodItem `json:"items"`
	Quantities []quantity.View   `json:"quantities"`
}

// Menu handles GET /api/menu
func (h *CatalogHandler) Menu(w http.ResponseWriter, r *http.Request) {
	s := currentSession(r)

	menu, err := s.Catalog.Menu(r.Context())
	if err != nil {
		h.logger.Error("failed to list menu", "error", err)
		s.Notices.Notify(notify.Errorf("Error", "Could not load the menu."))
		WriteServiceError(w, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, menu, h.logger)
}

// ListFoodItems handles GET /api/fooditems?search=&menu=
// The listed items become the visible quantity controls of the session.
func (h *CatalogHandler) ListFoodItems(w http.ResponseWriter, r *http.Request) {
	s := currentSession(r)
	q := r.URL.Query()

	items, err := s.Catalog.Browse(r.Context(), service.Filter{
		Search: q.Get("search"),
		Menu:   q.Get("menu"),
	})
	if err != nil {
		// the catalog is shared by all sessions; the notice belongs to this one
		s.Notices.Notify(notify.Errorf("Error", "Could not load food items."))
		WriteServiceError(w, err, h.logger)
		return
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	views := s.Board.Show(r.Context(), ids)

	WriteJSON(w, http.StatusOK, CatalogResponse{Items: items, Quantities: views}, h.logger)
}
