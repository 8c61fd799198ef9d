package quantity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/notify"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/qtycache"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/session"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const reconcileConcurrency = 4

const msgLoadFailed = "Could not load your cart quantities."

// ErrReconcile reports that at least one control could not be refreshed
var ErrReconcile = errors.New("failed to reconcile quantities")

// Deps are the collaborators shared by all controls of a board
type Deps struct {
	API      CartAPI
	Tokens   TokenSource
	Cache    qtycache.Cache
	Notifier notify.Notifier
	Logger   *slog.Logger
}

// Board holds the mounted controls of one browser session and keeps them in
// step with login and logout.
type Board struct {
	deps  Deps
	group singleflight.Group

	mu       sync.Mutex
	controls map[string]*Control
	version  uint64

	unsubscribe func()
}

// NewBoard creates a board and subscribes it to auth transitions
func NewBoard(deps Deps, auth *session.AuthState) *Board {
	if deps.Notifier == nil {
		deps.Notifier = notify.Discard{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	b := &Board{
		deps:     deps,
		controls: make(map[string]*Control),
	}
	if auth != nil {
		b.version = auth.Version()
		b.unsubscribe = auth.Subscribe(b.onAuth)
	}
	return b
}

// Mount returns the control of foodID, creating it when needed. A new control
// is seeded from the local cache and reconciled with the server when signed in.
// The returned error reports a failed reconcile; the control is usable anyway.
func (b *Board) Mount(ctx context.Context, foodID string) (*Control, error) {
	b.mu.Lock()
	if c, ok := b.controls[foodID]; ok {
		b.mu.Unlock()
		return c, nil
	}
	c := newControl(foodID, b.deps, &b.group)
	b.controls[foodID] = c
	b.mu.Unlock()

	if b.deps.Tokens.CustomerToken() == "" {
		return c, nil
	}
	if n, err := b.deps.Cache.Get(ctx, foodID); err == nil {
		c.Seed(n)
	} else if !errors.Is(err, qtycache.ErrMiss) {
		b.deps.Logger.Warn("quantity cache read failed", "food_id", foodID, "error", err)
	}
	return c, c.Reconcile(ctx)
}

// Show makes exactly foodIDs visible: missing controls are mounted, controls
// of items no longer listed are unmounted. Views come back in the given order.
func (b *Board) Show(ctx context.Context, foodIDs []string) []View {
	keep := make(map[string]bool, len(foodIDs))
	for _, id := range foodIDs {
		keep[id] = true
	}
	for _, c := range b.snapshot() {
		if !keep[c.FoodID()] {
			b.Unmount(c.FoodID())
		}
	}

	views := make([]View, len(foodIDs))
	var (
		g      errgroup.Group
		mu     sync.Mutex
		failed int
	)
	g.SetLimit(reconcileConcurrency)
	for i, id := range foodIDs {
		g.Go(func() error {
			c, err := b.Mount(ctx, id)
			if err != nil {
				mu.Lock()
				failed++
				mu.Unlock()
			}
			views[i] = c.View()
			return nil
		})
	}
	_ = g.Wait()

	if failed > 0 {
		b.deps.Notifier.Notify(notify.Errorf("", msgLoadFailed))
	}
	return views
}

// Control returns the mounted control of foodID
func (b *Board) Control(foodID string) (*Control, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.controls[foodID]
	return c, ok
}

// Unmount closes and forgets the control of foodID
func (b *Board) Unmount(foodID string) {
	b.mu.Lock()
	c, ok := b.controls[foodID]
	delete(b.controls, foodID)
	b.mu.Unlock()
	if ok {
		c.Close()
	}
}

// Views returns the state of every mounted control sorted by id
func (b *Board) Views() []View {
	b.mu.Lock()
	controls := make([]*Control, 0, len(b.controls))
	for _, c := range b.controls {
		controls = append(controls, c)
	}
	b.mu.Unlock()

	views := make([]View, 0, len(controls))
	for _, c := range controls {
		views = append(views, c.View())
	}
	sort.Slice(views, func(i, j int) bool { return views[i].FoodID < views[j].FoodID })
	return views
}

// Version is the auth state version the board last reconciled against
func (b *Board) Version() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.version
}

// SetLocal overwrites the displayed quantity of a mounted control, used when
// another view learned the value from the server (cart removal, checkout).
func (b *Board) SetLocal(foodID string, count int) {
	if c, ok := b.Control(foodID); ok {
		c.Seed(count)
	}
}

// ResetAll zeroes every control without network calls
func (b *Board) ResetAll() {
	for _, c := range b.snapshot() {
		c.Reset()
	}
}

// ReconcileAll refreshes every control from the server
func (b *Board) ReconcileAll(ctx context.Context) error {
	controls := b.snapshot()

	var (
		mu     sync.Mutex
		failed int
	)
	var g errgroup.Group
	g.SetLimit(reconcileConcurrency)
	for _, c := range controls {
		g.Go(func() error {
			if err := c.Reconcile(ctx); err != nil && !errors.Is(err, ErrClosed) {
				mu.Lock()
				failed++
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if failed > 0 {
		b.deps.Notifier.Notify(notify.Errorf("", msgLoadFailed))
		return fmt.Errorf("%d of %d items: %w", failed, len(controls), ErrReconcile)
	}
	return nil
}

// Wait blocks until every in-flight push has resolved
func (b *Board) Wait() {
	for _, c := range b.snapshot() {
		c.Wait()
	}
}

// Close unmounts every control and stops following auth transitions
func (b *Board) Close() {
	if b.unsubscribe != nil {
		b.unsubscribe()
	}
	b.mu.Lock()
	controls := b.controls
	b.controls = make(map[string]*Control)
	b.mu.Unlock()
	for _, c := range controls {
		c.Close()
	}
}

func (b *Board) snapshot() []*Control {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*Control, 0, len(b.controls))
	for _, c := range b.controls {
		out = append(out, c)
	}
	return out
}

// onAuth reacts to customer transitions: logout resets, login re-fetches
func (b *Board) onAuth(ev session.Event) {
	if ev.Kind != session.Customer {
		return
	}
	b.mu.Lock()
	b.version = ev.Version
	b.mu.Unlock()

	if !ev.LoggedIn {
		b.ResetAll()
		return
	}
	_ = b.ReconcileAll(context.Background())
}
