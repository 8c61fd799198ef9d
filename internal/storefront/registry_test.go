package storefront

import (
	"context"
	"testing"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/backend"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/backendtest"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/qtycache"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/session"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
)

func newRegistry(t *testing.T, idle time.Duration) (*Registry, *backendtest.Server) {
	t.Helper()
	srv := backendtest.New(t)
	r := NewRegistry(Deps{
		Backend:          backend.NewStatic(srv.URL, backend.WithLogger(logger.Discard())),
		Caches:           qtycache.MemoryFactory(time.Hour),
		CustomerTokenTTL: time.Hour,
		AdminTokenTTL:    time.Hour,
		Logger:           logger.Discard(),
	}, idle)
	t.Cleanup(func() { r.Close(context.Background()) })
	return r, srv
}

func TestRegistry_Resolve(t *testing.T) {
	r, _ := newRegistry(t, time.Hour)

	s, created := r.Resolve("")
	if !created || s.ID == "" {
		t.Fatalf("Resolve(\"\") = %v, %v", s, created)
	}

	again, created := r.Resolve(s.ID)
	if created || again != s {
		t.Error("Resolve() with a known id should return the same session")
	}

	other, created := r.Resolve("unknown-id")
	if !created || other.ID == "unknown-id" {
		t.Error("unknown ids must not be adopted")
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRegistry_SessionsAreIsolated(t *testing.T) {
	r, srv := newRegistry(t, time.Hour)
	a := r.Create()
	b := r.Create()

	a.Tokens.Set(session.Customer, srv.Signup(t, "alice", "pw"))
	a.Auth.Login(session.Customer)

	if b.Tokens.Present(session.Customer) {
		t.Error("token leaked across sessions")
	}
	if b.Auth.Version() != 0 {
		t.Errorf("other session version = %d, want 0", b.Auth.Version())
	}
	if a.Catalog != b.Catalog {
		t.Error("catalog should be shared")
	}
}

func TestRegistry_Sweep(t *testing.T) {
	r, _ := newRegistry(t, time.Minute)
	now := time.Now()
	r.now = func() time.Time { return now }

	stale := r.Create()
	now = now.Add(2 * time.Minute)
	fresh := r.Create()

	if n := r.Sweep(context.Background()); n != 1 {
		t.Fatalf("Sweep() = %d, want 1", n)
	}
	if _, ok := r.Get(stale.ID); ok {
		t.Error("stale session still present")
	}
	if _, ok := r.Get(fresh.ID); !ok {
		t.Error("fresh session evicted")
	}
}

func TestRegistry_LogoutResetsBoard(t *testing.T) {
	r, srv := newRegistry(t, time.Hour)
	s := r.Create()
	ctx := context.Background()

	s.Tokens.Set(session.Customer, srv.Signup(t, "alice", "pw"))
	s.Auth.Login(session.Customer)
	srv.SetCartCount("alice", "3", 4)

	c, err := s.Board.Mount(ctx, "3")
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if c.Count() != 4 {
		t.Fatalf("count = %d, want 4", c.Count())
	}

	before := srv.TotalCalls()
	s.Account.Logout()
	if c.Count() != 0 {
		t.Errorf("count after logout = %d, want 0", c.Count())
	}
	if srv.TotalCalls() != before {
		t.Error("logout issued a backend call")
	}
}
