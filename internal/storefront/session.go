// Package storefront keeps the client side state of every browser that talks
// to the front server: tokens, auth state, quantity controls, the cart page,
// the admin panel and pending notices.
package storefront

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/backend"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/notify"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/qtycache"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/quantity"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/session"
)

const noticeCapacity = 20

// Session is the state of one browser
type Session struct {
	ID string

	Tokens  *session.Tokens
	Auth    *session.AuthState
	Notices *notify.Queue
	Board   *quantity.Board

	Account *service.AuthService
	Catalog *service.CatalogService
	Cart    *service.CartPage
	Orders  *service.OrderService
	Admin   *service.AdminPanel

	cache qtycache.Cache
	log   *slog.Logger

	mu       sync.Mutex
	lastSeen time.Time
}

func newSession(id string, d Deps, catalog *service.CatalogService) *Session {
	log := d.Logger.With("session", id)
	tokens := session.NewTokens(d.CustomerTokenTTL, d.AdminTokenTTL)
	auth := session.NewAuthState()
	notices := notify.NewQueue(noticeCapacity)
	cache := d.Caches(id)

	board := quantity.NewBoard(quantity.Deps{
		API:      d.Backend,
		Tokens:   tokens,
		Cache:    cache,
		Notifier: notices,
		Logger:   log,
	}, auth)

	return &Session{
		ID:      id,
		Tokens:  tokens,
		Auth:    auth,
		Notices: notices,
		Board:   board,
		Account: service.NewAuthService(d.Backend, tokens, auth, notices, log),
		Catalog: catalog,
		Cart: service.NewCartPage(service.CartDeps{
			API:        d.Backend,
			Tokens:     tokens,
			Cache:      cache,
			Quantities: board,
			Notifier:   notices,
			Logger:     log,
		}),
		Orders:   service.NewOrderService(d.Backend, tokens, notices, log),
		Admin:    service.NewAdminPanel(d.Backend, tokens, notices, log),
		cache:    cache,
		log:      log,
		lastSeen: time.Now(),
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// LastSeen returns the time of the last request made with this session
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Close unmounts every control and drops the local quantity cache
func (s *Session) Close(ctx context.Context) {
	s.Board.Close()
	if err := s.cache.Clear(ctx); err != nil {
		s.log.Warn("failed to clear quantity cache", "error", err)
	}
}

// Deps are shared by every session of a registry
type Deps struct {
	Backend          *backend.Client
	Caches           qtycache.Factory
	CustomerTokenTTL time.Duration
	AdminTokenTTL    time.Duration
	Logger           *slog.Logger
}
