package backend

import (
	"context"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

// ListOrders returns the orders of the customer
func (c *Client) ListOrders(ctx context.Context, token string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders", token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// PlaceOrder submits a checkout
func (c *Client) PlaceOrder(ctx context.Context, token string, req models.OrderRequest) error {
	return c.do(ctx, http.MethodPost, "/orders", token, req, nil)
}

// AdminListOrders returns every order
func (c *Client) AdminListOrders(ctx context.Context, adminToken string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/admin/orders", adminToken, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus sets the status of an order
func (c *Client) UpdateOrderStatus(ctx context.Context, adminToken, id string, status models.OrderStatus) error {
	return c.do(ctx, http.MethodPatch, "/orders/"+escape(id), adminToken, models.StatusUpdate{Status: status}, nil)
}

// CancelOrder deletes an order
func (c *Client) CancelOrder(ctx context.Context, adminToken, id string) error {
	return c.do(ctx, http.MethodDelete, "/orders/"+escape(id), adminToken, nil, nil)
}
