package service

import (
	"context"
	"testing"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/backend"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/backendtest"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/notify"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/session"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
)

type env struct {
	srv     *backendtest.Server
	client  *backend.Client
	tokens  *session.Tokens
	state   *session.AuthState
	notices *notify.Queue
}

func newEnv(t *testing.T) *env {
	t.Helper()
	srv := backendtest.New(t)
	return &env{
		srv:     srv,
		client:  backend.NewStatic(srv.URL, backend.WithLogger(logger.Discard())),
		tokens:  session.NewTokens(time.Hour, time.Hour),
		state:   session.NewAuthState(),
		notices: notify.NewQueue(0),
	}
}

// signIn stores a customer token for username
func (e *env) signIn(t *testing.T, username string) {
	t.Helper()
	e.tokens.Set(session.Customer, e.srv.Signup(t, username, "secret"))
	e.state.Login(session.Customer)
}

func (e *env) signInAdmin(t *testing.T) {
	t.Helper()
	e.tokens.Set(session.Admin, e.srv.AdminToken(t))
	e.state.Login(session.Admin)
}

func lastNotice(t *testing.T, q *notify.Queue) notify.Notice {
	t.Helper()
	notices := q.Drain()
	if len(notices) == 0 {
		t.Fatal("expected a notice, got none")
	}
	return notices[len(notices)-1]
}

// recordingConfirmer remembers the prompts it was shown
type recordingConfirmer struct {
	answer  bool
	prompts []Prompt
}

func (r *recordingConfirmer) Confirm(_ context.Context, p Prompt) bool {
	r.prompts = append(r.prompts, p)
	return r.answer
}
