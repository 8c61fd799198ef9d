package storefront

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/qtycache"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/service"
	"github.com/google/uuid"
)

// Registry maps browser session ids to sessions and evicts idle ones
type Registry struct {
	deps    Deps
	idleTTL time.Duration
	catalog *service.CatalogService
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry. Sessions idle for longer than
// idleTTL are dropped by Sweep.
func NewRegistry(d Deps, idleTTL time.Duration) *Registry {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Caches == nil {
		d.Caches = qtycache.MemoryFactory(24 * time.Hour)
	}
	return &Registry{
		deps:     d,
		idleTTL:  idleTTL,
		catalog:  service.NewCatalogService(d.Backend, d.Logger),
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Get returns the live session with id and marks it as seen
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		s.touch(r.now())
	}
	return s, ok
}

// Create starts a new session with a fresh random id
func (r *Registry) Create() *Session {
	id := uuid.NewString()
	s := newSession(id, r.deps, r.catalog)
	s.touch(r.now())

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()

	r.deps.Logger.Debug("session created", "session", id)
	return s
}

// Resolve returns the session for id, creating one when id is unknown.
// created reports whether a new id was issued.
func (r *Registry) Resolve(id string) (s *Session, created bool) {
	if id != "" {
		if s, ok := r.Get(id); ok {
			return s, false
		}
	}
	return r.Create(), true
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep closes and removes every session idle for longer than the idle TTL
func (r *Registry) Sweep(ctx context.Context) int {
	if r.idleTTL <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idleTTL)

	var expired []*Session
	r.mu.Lock()
	for id, s := range r.sessions {
		if s.LastSeen().Before(cutoff) {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.Close(ctx)
	}
	if len(expired) > 0 {
		r.deps.Logger.Info("evicted idle sessions", "count", len(expired), "remaining", r.Len())
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Close drops every session
func (r *Registry) Close(ctx context.Context) {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		s.Close(ctx)
	}
}
