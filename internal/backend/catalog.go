package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

// ListFoodItems returns the catalog, filtered by name or category when search is set
func (c *Client) ListFoodItems(ctx context.Context, search string) ([]models.FoodItem, error) {
	path := "/fooditems"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}
	var items []models.FoodItem
	if err := c.do(ctx, http.MethodGet, path, "", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListCategoryItems returns the items of one menu category
func (c *Client) ListCategoryItems(ctx context.Context, menu string) ([]models.FoodItem, error) {
	var items []models.FoodItem
	if err := c.do(ctx, http.MethodGet, "/fooditems/"+escape(menu), "", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListMenu returns the menu categories
func (c *Client) ListMenu(ctx context.Context) ([]models.MenuCategory, error) {
	var menu []models.MenuCategory
	if err := c.do(ctx, http.MethodGet, "/menu", "", nil, &menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// CreateFoodItem adds a catalog entry
func (c *Client) CreateFoodItem(ctx context.Context, adminToken string, in models.FoodItemInput) error {
	return c.do(ctx, http.MethodPost, "/fooditems", adminToken, in, nil)
}

// DeleteFoodItem removes a catalog entry
func (c *Client) DeleteFoodItem(ctx context.Context, adminToken, id string) error {
	return c.do(ctx, http.MethodDelete, "/fooditems/"+escape(id), adminToken, nil, nil)
}

// AdminListItems lists the catalog through the admin endpoint
func (c *Client) AdminListItems(ctx context.Context, adminToken string) ([]models.FoodItem, error) {
	var items []models.FoodItem
	if err := c.do(ctx, http.MethodGet, "/admin/listitems", adminToken, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}
