package backend

import (
	"context"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

// ItemCount returns the cart quantity of one item
func (c *Client) ItemCount(ctx context.Context, token, foodID string) (int, error) {
	var count int
	if err := c.do(ctx, http.MethodGet, "/eachfooditem/"+escape(foodID), token, nil, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// SetItemCount pushes the quantity of one item
func (c *Client) SetItemCount(ctx context.Context, token, foodID string, count int) error {
	req := models.SetCountRequest{FoodID: foodID, Count: count}
	return c.do(ctx, http.MethodPost, "/cart/add", token, req, nil)
}

// Cart returns the full cart of the customer
func (c *Client) Cart(ctx context.Context, token string) ([]models.CartEntry, error) {
	var entries []models.CartEntry
	if err := c.do(ctx, http.MethodGet, "/cart", token, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// RemoveCartItem deletes one cart line
func (c *Client) RemoveCartItem(ctx context.Context, token, foodID string) error {
	return c.do(ctx, http.MethodDelete, "/cart/"+escape(foodID), token, nil, nil)
}

// ClearCart empties the cart
func (c *Client) ClearCart(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/cart/clear", token, nil, nil)
}
