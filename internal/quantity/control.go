// Package quantity implements the per-item cart quantity controls shown next
// to every catalog item. Changes are applied locally first and pushed to the
// cart endpoint in the background; at most one push per item is in flight.
package quantity

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/notify"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/qtycache"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrBusy is returned when a push for the item is still in flight; the request is ignored
	ErrBusy = errors.New("quantity sync in progress")
	// ErrSignInRequired is returned when no customer token is present
	ErrSignInRequired = errors.New("sign in required")
	// ErrClosed is returned by a control that has been unmounted
	ErrClosed = errors.New("quantity control closed")
)

const (
	msgSignIn     = "Please Sign In to Continue"
	msgSyncFailed = "Could not sync cart. Please try again."
)

// CartAPI is the slice of the backend used by a control
type CartAPI interface {
	ItemCount(ctx context.Context, token, foodID string) (int, error)
	SetItemCount(ctx context.Context, token, foodID string, count int) error
}

// TokenSource yields the customer token, re-read on every call
type TokenSource interface {
	CustomerToken() string
}

// View is the displayed state of one control
type View struct {
	FoodID string `json:"foodId"`
	Count  int    `json:"count"`
	Busy   bool   `json:"busy"`
}

// Control is the quantity widget of one catalog item
type Control struct {
	foodID   string
	api      CartAPI
	tokens   TokenSource
	cache    qtycache.Cache
	notifier notify.Notifier
	group    *singleflight.Group
	log      *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	count    int
	inflight bool
	closed   bool
}

func newControl(foodID string, d Deps, group *singleflight.Group) *Control {
	ctx, cancel := context.WithCancel(context.Background())
	return &Control{
		foodID:   foodID,
		api:      d.API,
		tokens:   d.Tokens,
		cache:    d.Cache,
		notifier: d.Notifier,
		group:    group,
		log:      d.Logger.With("food_id", foodID),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// FoodID returns the item the control belongs to
func (c *Control) FoodID() string {
	return c.foodID
}

// View returns the displayed state
func (c *Control) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return View{FoodID: c.foodID, Count: c.count, Busy: c.inflight}
}

// Count returns the displayed quantity
func (c *Control) Count() int {
	return c.View().Count
}

// Increment adds one locally and pushes the new value in the background
func (c *Control) Increment() (View, error) {
	token := c.tokens.CustomerToken()
	if token == "" {
		c.notifier.Notify(notify.Errorf("", msgSignIn))
		return c.View(), ErrSignInRequired
	}
	return c.change(token, +1)
}

// Decrement removes one locally, never going below zero, and pushes the new value.
// A decrement at zero changes nothing and pushes nothing.
func (c *Control) Decrement() (View, error) {
	token := c.tokens.CustomerToken()
	if token == "" {
		return c.View(), ErrSignInRequired
	}
	return c.change(token, -1)
}

func (c *Control) change(token string, step int) (View, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return View{FoodID: c.foodID}, ErrClosed
	}
	if c.inflight {
		v := View{FoodID: c.foodID, Count: c.count, Busy: true}
		c.mu.Unlock()
		c.log.Debug("quantity change ignored, sync in progress")
		return v, ErrBusy
	}

	next := c.count + step
	if next < 0 {
		next = 0
	}
	delta := next - c.count
	if delta == 0 {
		v := View{FoodID: c.foodID, Count: c.count}
		c.mu.Unlock()
		return v, nil
	}

	c.count = next
	c.inflight = true
	c.wg.Add(1)
	v := View{FoodID: c.foodID, Count: next, Busy: true}
	c.mu.Unlock()

	go c.push(token, next, delta)
	return v, nil
}

// push sends next to the cart endpoint. On failure the displayed value steps
// back by delta, but only if nothing else changed it meanwhile.
func (c *Control) push(token string, next, delta int) {
	defer c.wg.Done()

	err := c.api.SetItemCount(c.ctx, token, c.foodID, next)

	c.mu.Lock()
	c.inflight = false
	if c.closed {
		c.mu.Unlock()
		return
	}
	if err != nil {
		reverted := c.count
		if c.count == next {
			reverted = next - delta
			if reverted < 0 {
				reverted = 0
			}
			c.count = reverted
		}
		c.mu.Unlock()

		c.log.Warn("cart sync failed", "count", next, "reverted_to", reverted, "error", err)
		c.notifier.Notify(notify.Errorf("", msgSyncFailed))
		return
	}
	current := c.count == next
	c.mu.Unlock()

	c.log.Debug("cart sync succeeded", "count", next)
	if !current {
		// reset or reconciled while in flight; the cache follows the display
		return
	}
	if err := c.cache.Set(c.ctx, c.foodID, next); err != nil {
		c.log.Warn("failed to mirror quantity", "error", err)
	}
}

// Reset zeroes the displayed quantity without any network call
func (c *Control) Reset() {
	c.mu.Lock()
	c.count = 0
	c.mu.Unlock()
}

// Seed sets the displayed quantity from a local hint
func (c *Control) Seed(count int) {
	if count < 0 {
		count = 0
	}
	c.mu.Lock()
	c.count = count
	c.mu.Unlock()
}

// Reconcile adopts the server quantity when signed in, or resets to zero otherwise.
// Concurrent reconciles of the same item and token share one request.
func (c *Control) Reconcile(ctx context.Context) error {
	token := c.tokens.CustomerToken()
	if token == "" {
		c.Reset()
		return nil
	}

	key := c.foodID + "\x00" + token
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		return c.api.ItemCount(ctx, token, c.foodID)
	})

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if err != nil {
		c.count = 0
		c.mu.Unlock()
		c.log.Warn("failed to fetch cart quantity", "error", err)
		return err
	}
	count := v.(int)
	if count < 0 {
		count = 0
	}
	c.count = count
	c.mu.Unlock()

	if err := c.cache.Set(ctx, c.foodID, count); err != nil {
		c.log.Warn("failed to mirror quantity", "error", err)
	}
	return nil
}

// Wait blocks until the in-flight push, if any, has resolved
func (c *Control) Wait() {
	c.wg.Wait()
}

// Close unmounts the control: the in-flight push is cancelled and any late
// result is discarded without touching state.
func (c *Control) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
}
