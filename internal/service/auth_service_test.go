package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/backendtest"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/notify"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/session"
	"github.com/Lixing-Zhang/kart-challenge/storefront/pkg/logger"
)

func newAuthService(e *env) *AuthService {
	return NewAuthService(e.client, e.tokens, e.state, e.notices, logger.Discard())
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	e := newEnv(t)
	svc := newAuthService(e)
	ctx := context.Background()

	var events []session.Event
	e.state.Subscribe(func(ev session.Event) { events = append(events, ev) })

	if err := svc.Register(ctx, models.RegisterRequest{Username: "alice", Email: "a@example.com", Password: "pw"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if got := lastNotice(t, e.notices).Message; got != "Registration successful! Please log in." {
		t.Errorf("notice = %q", got)
	}
	if e.tokens.Present(session.Customer) {
		t.Error("registration must not sign in")
	}

	err := svc.Register(ctx, models.RegisterRequest{Username: "alice", Email: "a@example.com", Password: "pw"})
	if err == nil {
		t.Fatal("duplicate Register() expected error")
	}
	if got := lastNotice(t, e.notices).Message; got != "User already exists" {
		t.Errorf("notice = %q", got)
	}

	if err := svc.Login(ctx, models.LoginRequest{Username: "alice", Password: "pw"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !e.tokens.Present(session.Customer) {
		t.Error("token not stored")
	}
	if n := lastNotice(t, e.notices); n.Level != notify.Success || n.Message != "Login successful" {
		t.Errorf("notice = %+v", n)
	}
	if len(events) != 1 || !events[0].LoggedIn || events[0].Version != 1 {
		t.Errorf("events = %+v", events)
	}

	svc.Logout()
	if e.tokens.Present(session.Customer) {
		t.Error("token still present after logout")
	}
	if got := lastNotice(t, e.notices).Message; got != "Account Signed out" {
		t.Errorf("notice = %q", got)
	}
	if e.state.Version() != 2 {
		t.Errorf("version = %d, want 2", e.state.Version())
	}
}

func TestAuthService_LoginRejected(t *testing.T) {
	e := newEnv(t)
	svc := newAuthService(e)

	err := svc.Login(context.Background(), models.LoginRequest{Username: "ghost", Password: "nope"})
	if err == nil {
		t.Fatal("Login() expected error")
	}
	if e.tokens.Present(session.Customer) || e.state.Version() != 0 {
		t.Error("failed login changed the session")
	}
	if got := lastNotice(t, e.notices).Message; got != "Invalid username or password" {
		t.Errorf("notice = %q", got)
	}
}

func TestAuthService_Admin(t *testing.T) {
	e := newEnv(t)
	svc := newAuthService(e)
	ctx := context.Background()

	if _, err := svc.AdminLogin(ctx, models.AdminLoginRequest{Username: backendtest.AdminUsername, Password: "wrong"}); err == nil {
		t.Fatal("AdminLogin() with bad password expected error")
	}
	if got := lastNotice(t, e.notices).Message; got != "Invalid admin credentials" {
		t.Errorf("notice = %q", got)
	}

	if _, err := svc.AdminLogin(ctx, models.AdminLoginRequest{Username: backendtest.AdminUsername, Password: backendtest.AdminPassword}); err != nil {
		t.Fatalf("AdminLogin() error = %v", err)
	}
	if !svc.Status().AdminLoggedIn {
		t.Error("admin not logged in")
	}

	if err := svc.AdminLogout(ctx, Declined); !errors.Is(err, ErrNotConfirmed) {
		t.Errorf("AdminLogout() declined error = %v", err)
	}
	if !e.tokens.Present(session.Admin) {
		t.Error("declined logout cleared the token")
	}

	if err := svc.AdminLogout(ctx, Confirmed); err != nil {
		t.Fatalf("AdminLogout() error = %v", err)
	}
	if svc.Status().AdminLoggedIn {
		t.Error("admin still logged in")
	}
	if got := lastNotice(t, e.notices).Title; got != "Logged Out!" {
		t.Errorf("notice title = %q", got)
	}
}

func TestAuthService_StatusExpiresFlag(t *testing.T) {
	e := newEnv(t)
	svc := newAuthService(e)

	e.state.Login(session.Customer)
	status := svc.Status()
	if status.LoggedIn {
		t.Error("LoggedIn without a token")
	}
	if e.state.LoggedIn(session.Customer) {
		t.Error("flag not cleared")
	}
	if status.Version != 2 {
		t.Errorf("version = %d, want 2", status.Version)
	}

	e.tokens.Set(session.Customer, "token")
	status = svc.Status()
	if !status.LoggedIn || status.Version != 2 {
		t.Errorf("status = %+v, want restored without bump", status)
	}
}
