package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/notify"
	"github.com/shopspring/decimal"
)

// AdminAPI is the backend surface reserved to administrators
type AdminAPI interface {
	CreateFoodItem(ctx context.Context, adminToken string, in models.FoodItemInput) error
	DeleteFoodItem(ctx context.Context, adminToken, id string) error
	AdminListItems(ctx context.Context, adminToken string) ([]models.FoodItem, error)
	AdminListOrders(ctx context.Context, adminToken string) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, adminToken, id string, status models.OrderStatus) error
	CancelOrder(ctx context.Context, adminToken, id string) error
}

// AdminTokens exposes the admin bearer token, empty when signed out
type AdminTokens interface {
	AdminToken() string
}

// ItemForm is the raw add-item form; every field arrives as text
type ItemForm struct {
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       string `json:"price"`
}

// Input validates the form and converts it to the backend payload
func (f ItemForm) Input() (models.FoodItemInput, error) {
	in := models.FoodItemInput{
		Name:        strings.TrimSpace(f.Name),
		Image:       strings.TrimSpace(f.Image),
		Description: strings.TrimSpace(f.Description),
		Category:    strings.TrimSpace(f.Category),
	}
	price := strings.TrimSpace(f.Price)
	if in.Name == "" || in.Image == "" || in.Description == "" || in.Category == "" || price == "" {
		return in, ErrInvalidItem
	}
	d, err := decimal.NewFromString(price)
	if err != nil || !d.IsPositive() {
		return in, ErrInvalidPrice
	}
	in.Price = d.InexactFloat64()
	return in, nil
}

// AdminPanel runs the administrator operations
type AdminPanel struct {
	api      AdminAPI
	tokens   AdminTokens
	notifier notify.Notifier
	log      *slog.Logger
}

// NewAdminPanel creates a new admin panel
func NewAdminPanel(api AdminAPI, tokens AdminTokens, notifier notify.Notifier, log *slog.Logger) *AdminPanel {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &AdminPanel{api: api, tokens: tokens, notifier: notifier, log: log}
}

func (a *AdminPanel) token() (string, error) {
	token := a.tokens.AdminToken()
	if token == "" {
		return "", ErrAdminSignInRequired
	}
	return token, nil
}

// AddItem creates a catalog entry and returns the refreshed list
func (a *AdminPanel) AddItem(ctx context.Context, form ItemForm) ([]models.FoodItem, error) {
	token, err := a.token()
	if err != nil {
		return nil, err
	}

	in, err := form.Input()
	if err != nil {
		msg := "All fields are required!"
		if errors.Is(err, ErrInvalidPrice) {
			msg = "Price must be a positive number."
		}
		a.notifier.Notify(notify.Notice{Level: notify.Warning, Title: "Oops...", Message: msg})
		return nil, err
	}

	if err := a.api.CreateFoodItem(ctx, token, in); err != nil {
		a.log.Error("failed to add food item", "name", in.Name, "error", err)
		if isTransport(err) {
			a.notifier.Notify(notify.Errorf("Server Error", "Could not connect to backend."))
		} else {
			a.notifier.Notify(notify.Errorf("Error", backendMessage(err, "Failed to add item.", "")))
		}
		return nil, fmt.Errorf("add item: %w", err)
	}

	a.log.Info("food item added", "name", in.Name, "category", in.Category)
	a.notifier.Notify(notify.Successf("Item Added!", "Food item successfully added."))
	return a.refreshItems(ctx, token), nil
}

// ListItems returns the full catalog as administrators see it
func (a *AdminPanel) ListItems(ctx context.Context) ([]models.FoodItem, error) {
	token, err := a.token()
	if err != nil {
		return nil, err
	}
	items, err := a.fetchItems(ctx, token)
	if err != nil {
		a.log.Error("failed to list food items", "error", err)
		a.notifier.Notify(notify.Errorf("Error", "Could not load food items."))
		return nil, err
	}
	return items, nil
}

func (a *AdminPanel) fetchItems(ctx context.Context, token string) ([]models.FoodItem, error) {
	items, err := a.api.AdminListItems(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if items == nil {
		items = []models.FoodItem{}
	}
	return items, nil
}

// refreshItems reloads the list after a change that already succeeded.
// A failed reload yields nil so the change is not reported as failed.
func (a *AdminPanel) refreshItems(ctx context.Context, token string) []models.FoodItem {
	items, err := a.fetchItems(ctx, token)
	if err != nil {
		a.log.Warn("item list refresh failed", "error", err)
		return nil
	}
	return items
}

// DeleteItem removes a catalog entry once c accepts the prompt
func (a *AdminPanel) DeleteItem(ctx context.Context, id string, c Confirmer) ([]models.FoodItem, error) {
	token, err := a.token()
	if err != nil {
		return nil, err
	}
	if err := confirm(ctx, c, promptDeleteItem); err != nil {
		return nil, err
	}

	if err := a.api.DeleteFoodItem(ctx, token, id); err != nil {
		a.log.Error("failed to delete food item", "id", id, "error", err)
		a.notifier.Notify(notify.Errorf("Error", "Failed to delete item."))
		return nil, fmt.Errorf("delete item %s: %w", id, err)
	}

	a.notifier.Notify(notify.Successf("Deleted!", "Food item has been deleted."))
	return a.refreshItems(ctx, token), nil
}

// ListOrders returns every order
func (a *AdminPanel) ListOrders(ctx context.Context) ([]OrderView, error) {
	token, err := a.token()
	if err != nil {
		return nil, err
	}
	orders, err := a.fetchOrders(ctx, token)
	if err != nil {
		a.log.Error("failed to list orders", "error", err)
		a.notifier.Notify(notify.Errorf("Error", "Could not load orders."))
		return nil, err
	}
	return orders, nil
}

func (a *AdminPanel) fetchOrders(ctx context.Context, token string) ([]OrderView, error) {
	orders, err := a.api.AdminListOrders(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orderViews(orders), nil
}

// refreshOrders is the order list counterpart of refreshItems
func (a *AdminPanel) refreshOrders(ctx context.Context, token string) []OrderView {
	orders, err := a.fetchOrders(ctx, token)
	if err != nil {
		a.log.Warn("order list refresh failed", "error", err)
		return nil
	}
	return orders
}

// UpdateStatus sets any known status on an order. No transition rules apply.
func (a *AdminPanel) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) ([]OrderView, error) {
	token, err := a.token()
	if err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	if err := a.api.UpdateOrderStatus(ctx, token, id, status); err != nil {
		a.log.Error("failed to update order status", "id", id, "status", status, "error", err)
		a.notifier.Notify(notify.Errorf("Error", "Failed to update order status."))
		return nil, fmt.Errorf("update order %s: %w", id, err)
	}

	a.notifier.Notify(notify.Successf("Updated!", "Order status updated."))
	return a.refreshOrders(ctx, token), nil
}

// CancelOrder deletes an order once c accepts the prompt
func (a *AdminPanel) CancelOrder(ctx context.Context, id string, c Confirmer) ([]OrderView, error) {
	token, err := a.token()
	if err != nil {
		return nil, err
	}
	if err := confirm(ctx, c, promptCancelOrder); err != nil {
		return nil, err
	}

	if err := a.api.CancelOrder(ctx, token, id); err != nil {
		a.log.Error("failed to cancel order", "id", id, "error", err)
		a.notifier.Notify(notify.Errorf("Error", "Failed to cancel order."))
		return nil, fmt.Errorf("cancel order %s: %w", id, err)
	}

	a.notifier.Notify(notify.Successf("Canceled!", "Order has been canceled."))
	return a.refreshOrders(ctx, token), nil
}
