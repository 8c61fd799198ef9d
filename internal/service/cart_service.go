package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/notify"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/qtycache"
	"github.com/shopspring/decimal"
)

const (
	clearAttempts = 3
	clearBackoff  = 200 * time.Millisecond

	msgCheckoutFailed = "Something went wrong while placing the order."
)

// CartAPI is the backend surface used by the cart page
type CartAPI interface {
	Cart(ctx context.Context, token string) ([]models.CartEntry, error)
	RemoveCartItem(ctx context.Context, token, foodID string) error
	ClearCart(ctx context.Context, token string) error
	PlaceOrder(ctx context.Context, token string, req models.OrderRequest) error
}

// CustomerTokens exposes the customer bearer token, empty when signed out
type CustomerTokens interface {
	CustomerToken() string
}

// LocalQuantities receives quantity changes made from the cart page
type LocalQuantities interface {
	SetLocal(foodID string, count int)
	ResetAll()
}

// CartView is what the cart page renders
type CartView struct {
	Lines    []models.CartLine `json:"lines"`
	Total    decimal.Decimal   `json:"total"`
	Checkout bool              `json:"checkout"`
}

// CartPage holds the cart page state of one browser
type CartPage struct {
	api        CartAPI
	tokens     CustomerTokens
	cache      qtycache.Cache
	quantities LocalQuantities
	notifier   notify.Notifier
	log        *slog.Logger

	backoff time.Duration

	mu       sync.Mutex
	lines    []models.CartLine
	checkout bool
}

// CartDeps groups the collaborators of a CartPage
type CartDeps struct {
	API        CartAPI
	Tokens     CustomerTokens
	Cache      qtycache.Cache
	Quantities LocalQuantities
	Notifier   notify.Notifier
	Logger     *slog.Logger
}

// NewCartPage creates an empty cart page
func NewCartPage(d CartDeps) *CartPage {
	if d.Cache == nil {
		d.Cache = qtycache.NewMemory(24 * time.Hour)
	}
	if d.Notifier == nil {
		d.Notifier = notify.Discard{}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return &CartPage{
		api:        d.API,
		tokens:     d.Tokens,
		cache:      d.Cache,
		quantities: d.Quantities,
		notifier:   d.Notifier,
		log:        d.Logger,
		backoff:    clearBackoff,
	}
}

// Load fetches the cart and replaces the displayed lines.
// Without a customer token the page is emptied and nothing is fetched.
func (p *CartPage) Load(ctx context.Context) (CartView, error) {
	token := p.tokens.CustomerToken()
	if token == "" {
		p.mu.Lock()
		p.lines = nil
		p.checkout = false
		p.mu.Unlock()
		return p.View(), nil
	}

	entries, err := p.api.Cart(ctx, token)
	if err != nil {
		p.log.Error("failed to load cart", "error", err)
		p.notifier.Notify(notify.Errorf("Error", "Unable to load your cart. Please try again."))
		return p.View(), fmt.Errorf("load cart: %w", err)
	}

	lines := make([]models.CartLine, 0, len(entries))
	for _, e := range entries {
		line := models.NewCartLine(e)
		lines = append(lines, line)
		if err := p.cache.Set(ctx, line.FoodID, line.Quantity); err != nil {
			p.log.Warn("failed to cache quantity", "food_id", line.FoodID, "error", err)
		}
	}

	p.mu.Lock()
	p.lines = lines
	if len(lines) == 0 {
		p.checkout = false
	}
	p.mu.Unlock()
	return p.View(), nil
}

// Remove deletes an item on the server, then drops its row
func (p *CartPage) Remove(ctx context.Context, foodID string) (CartView, error) {
	token := p.tokens.CustomerToken()
	if token == "" {
		return p.View(), ErrSignInRequired
	}

	if err := p.api.RemoveCartItem(ctx, token, foodID); err != nil {
		p.log.Error("failed to remove cart item", "food_id", foodID, "error", err)
		p.notifier.Notify(notify.Errorf("Error", "Could not remove the item. Please try again."))
		return p.View(), fmt.Errorf("remove %s: %w", foodID, err)
	}

	p.mu.Lock()
	kept := p.lines[:0:0]
	for _, l := range p.lines {
		if l.FoodID != foodID {
			kept = append(kept, l)
		}
	}
	p.lines = kept
	if len(kept) == 0 {
		p.checkout = false
	}
	p.mu.Unlock()

	if err := p.cache.Set(ctx, foodID, 0); err != nil {
		p.log.Warn("failed to cache quantity", "food_id", foodID, "error", err)
	}
	if p.quantities != nil {
		p.quantities.SetLocal(foodID, 0)
	}
	return p.View(), nil
}

// View returns the current page state without touching the network
func (p *CartPage) View() CartView {
	p.mu.Lock()
	defer p.mu.Unlock()
	lines := make([]models.CartLine, len(p.lines))
	copy(lines, p.lines)
	return CartView{Lines: lines, Total: models.GrandTotal(lines), Checkout: p.checkout}
}

// Total is Σ unitPrice × quantity over the displayed lines
func (p *CartPage) Total() decimal.Decimal {
	return p.View().Total
}

// BeginCheckout switches the page to the address form
func (p *CartPage) BeginCheckout() (CartView, error) {
	p.mu.Lock()
	empty := len(p.lines) == 0
	if !empty {
		p.checkout = true
	}
	p.mu.Unlock()

	if empty {
		p.notifier.Notify(notify.Infof("Empty Cart", "Add items to your cart before checking out."))
		return p.View(), ErrEmptyCart
	}
	return p.View(), nil
}

// ExitCheckout leaves the address form once the user confirms
func (p *CartPage) ExitCheckout(ctx context.Context, c Confirmer) (CartView, error) {
	if err := confirm(ctx, c, promptExitCheckout); err != nil {
		return p.View(), err
	}
	p.mu.Lock()
	p.checkout = false
	p.mu.Unlock()
	return p.View(), nil
}

// Checkout places an order for the displayed lines and clears the cart.
// The cart clear is retried; when it still fails the order stays placed
// and ErrCartNotCleared is returned.
func (p *CartPage) Checkout(ctx context.Context, addr models.Address) (CartView, error) {
	if !addr.Complete() {
		p.notifier.Notify(notify.Notice{Level: notify.Warning, Title: "Missing Info", Message: "Please fill in all delivery details."})
		return p.View(), ErrMissingAddress
	}

	p.mu.Lock()
	lines := make([]models.CartLine, len(p.lines))
	copy(lines, p.lines)
	p.mu.Unlock()

	if len(lines) == 0 {
		p.notifier.Notify(notify.Infof("Empty Cart", "Add items to your cart before checking out."))
		return p.View(), ErrEmptyCart
	}

	token := p.tokens.CustomerToken()
	if token == "" {
		return p.View(), ErrSignInRequired
	}

	req := models.OrderRequest{Items: make([]models.OrderItem, 0, len(lines)), Address: addr}
	for _, l := range lines {
		req.Items = append(req.Items, models.OrderItem{
			Name:     l.Name,
			Image:    l.Image,
			Price:    l.UnitPrice.InexactFloat64(),
			Quantity: l.Quantity,
		})
	}

	if err := p.api.PlaceOrder(ctx, token, req); err != nil {
		p.log.Error("failed to place order", "error", err)
		p.notifier.Notify(notify.Errorf("Error", msgCheckoutFailed))
		return p.View(), fmt.Errorf("%w: %w", ErrCheckoutFailed, err)
	}

	if err := p.clearWithRetry(ctx, token); err != nil {
		p.log.Error("order placed but cart clear failed", "attempts", clearAttempts, "error", err)
		p.notifier.Notify(notify.Errorf("Error", msgCheckoutFailed))
		return p.View(), fmt.Errorf("%w: %w", ErrCartNotCleared, err)
	}

	if err := p.cache.Clear(ctx); err != nil {
		p.log.Warn("failed to clear quantity cache", "error", err)
	}
	if p.quantities != nil {
		p.quantities.ResetAll()
	}

	p.mu.Lock()
	p.lines = nil
	p.checkout = false
	p.mu.Unlock()

	p.log.Info("order placed", "items", len(req.Items))
	p.notifier.Notify(notify.Successf("Order Placed",
		fmt.Sprintf("Thank you %s, your order has been placed successfully.", addr.FirstName)))
	return p.View(), nil
}

func (p *CartPage) clearWithRetry(ctx context.Context, token string) error {
	var err error
	for attempt := 1; attempt <= clearAttempts; attempt++ {
		if err = p.api.ClearCart(ctx, token); err == nil {
			return nil
		}
		p.log.Warn("cart clear failed", "attempt", attempt, "error", err)
		if attempt == clearAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.backoff * time.Duration(attempt)):
		}
	}
	return err
}
