package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/notify"
	"github.com/shopspring/decimal"
)

// OrdersAPI lists the signed-in customer's orders
type OrdersAPI interface {
	ListOrders(ctx context.Context, token string) ([]models.Order, error)
}

// OrderView is an order with its display fields computed
type OrderView struct {
	models.Order
	ShortID string          `json:"shortId"`
	Total   decimal.Decimal `json:"total"`
}

// NewOrderView decorates o for display
func NewOrderView(o models.Order) OrderView {
	return OrderView{Order: o, ShortID: o.ShortID(), Total: o.Total()}
}

func orderViews(orders []models.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, NewOrderView(o))
	}
	return views
}

// OrderService handles the customer order history
type OrderService struct {
	api      OrdersAPI
	tokens   CustomerTokens
	notifier notify.Notifier
	log      *slog.Logger
}

// NewOrderService creates a new order service
func NewOrderService(api OrdersAPI, tokens CustomerTokens, notifier notify.Notifier, log *slog.Logger) *OrderService {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &OrderService{api: api, tokens: tokens, notifier: notifier, log: log}
}

// List returns the customer's orders, newest first as the backend sends them
func (s *OrderService) List(ctx context.Context) ([]OrderView, error) {
	token := s.tokens.CustomerToken()
	if token == "" {
		s.notifier.Notify(notify.Infof("", "Please sign in to view your orders"))
		return nil, ErrSignInRequired
	}

	orders, err := s.api.ListOrders(ctx, token)
	if err != nil {
		s.log.Error("failed to load orders", "error", err)
		s.notifier.Notify(notify.Errorf("Error", "Could not load your orders."))
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orderViews(orders), nil
}
