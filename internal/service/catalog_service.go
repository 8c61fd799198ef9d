package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

// CatalogAPI is the read side of the catalog
type CatalogAPI interface {
	ListFoodItems(ctx context.Context, search string) ([]models.FoodItem, error)
	ListCategoryItems(ctx context.Context, menu string) ([]models.FoodItem, error)
	ListMenu(ctx context.Context) ([]models.MenuCategory, error)
}

// Filter narrows the catalog listing. Search wins over Menu.
type Filter struct {
	Search string
	Menu   string
}

// CatalogService handles menu and food item browsing
type CatalogService struct {
	api CatalogAPI
	log *slog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(api CatalogAPI, log *slog.Logger) *CatalogService {
	return &CatalogService{api: api, log: log}
}

// Menu returns the menu categories
func (s *CatalogService) Menu(ctx context.Context) ([]models.MenuCategory, error) {
	return s.api.ListMenu(ctx)
}

// Browse returns the food items matching f
func (s *CatalogService) Browse(ctx context.Context, f Filter) ([]models.FoodItem, error) {
	search := strings.TrimSpace(f.Search)
	menu := strings.TrimSpace(f.Menu)

	var (
		items []models.FoodItem
		err   error
	)
	switch {
	case search != "":
		items, err = s.api.ListFoodItems(ctx, search)
	case menu != "" && !strings.EqualFold(menu, "all"):
		items, err = s.api.ListCategoryItems(ctx, menu)
	default:
		items, err = s.api.ListFoodItems(ctx, "")
	}
	if err != nil {
		s.log.Error("failed to browse catalog", "search", search, "menu", menu, "error", err)
		return nil, err
	}
	if items == nil {
		items = []models.FoodItem{}
	}
	return items, nil
}
