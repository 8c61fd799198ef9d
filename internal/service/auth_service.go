package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/notify"
	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/session"
)

// AuthAPI is the backend surface for credentials
type AuthAPI interface {
	Register(ctx context.Context, req models.RegisterRequest) error
	Login(ctx context.Context, req models.LoginRequest) (string, error)
	AdminLogin(ctx context.Context, req models.AdminLoginRequest) (models.AdminLoginResponse, error)
}

// Status is the login state reported to the browser
type Status struct {
	LoggedIn      bool   `json:"loggedIn"`
	AdminLoggedIn bool   `json:"adminLoggedIn"`
	Version       uint64 `json:"version"`
}

// AuthService runs the customer and admin sign in flows of one browser
type AuthService struct {
	api      AuthAPI
	tokens   *session.Tokens
	state    *session.AuthState
	notifier notify.Notifier
	log      *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(api AuthAPI, tokens *session.Tokens, state *session.AuthState, notifier notify.Notifier, log *slog.Logger) *AuthService {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &AuthService{api: api, tokens: tokens, state: state, notifier: notifier, log: log}
}

// Register creates a customer account. The user still has to log in.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) error {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if err := s.api.Register(ctx, req); err != nil {
		s.log.Warn("registration failed", "username", req.Username, "error", err)
		s.notifier.Notify(notify.Errorf("", backendMessage(err, "Registration failed", "Server error during registration")))
		return fmt.Errorf("register: %w", err)
	}

	s.notifier.Notify(notify.Successf("", "Registration successful! Please log in."))
	return nil
}

// Login stores the customer token and bumps the auth state version
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) error {
	req.Username = strings.TrimSpace(req.Username)

	token, err := s.api.Login(ctx, req)
	if err != nil {
		s.log.Warn("login failed", "username", req.Username, "error", err)
		s.notifier.Notify(notify.Errorf("", backendMessage(err, "Login failed", "Server error during login")))
		return fmt.Errorf("login: %w", err)
	}

	s.tokens.Set(session.Customer, token)
	s.state.Login(session.Customer)
	s.log.Info("customer logged in", "username", req.Username)
	s.notifier.Notify(notify.Successf("", "Login successful"))
	return nil
}

// Logout drops the customer token. Quantity controls reset through the auth state.
func (s *AuthService) Logout() {
	s.tokens.Clear(session.Customer)
	s.state.Logout(session.Customer)
	s.notifier.Notify(notify.Successf("", "Account Signed out"))
}

// AdminLogin stores the admin token and returns the backend's message
func (s *AuthService) AdminLogin(ctx context.Context, req models.AdminLoginRequest) (string, error) {
	req.Username = strings.TrimSpace(req.Username)

	resp, err := s.api.AdminLogin(ctx, req)
	if err != nil {
		fallback := "Login failed!"
		if resp.Message != "" {
			fallback = resp.Message
		}
		msg := backendMessage(err, fallback, "Server error. Please try again!")
		s.log.Warn("admin login failed", "username", req.Username, "error", err)
		s.notifier.Notify(notify.Errorf("", msg))
		return msg, fmt.Errorf("admin login: %w", err)
	}

	s.tokens.Set(session.Admin, resp.Token)
	s.state.Login(session.Admin)
	s.log.Info("admin logged in", "username", req.Username)
	s.notifier.Notify(notify.Successf("", resp.Message))
	return resp.Message, nil
}

// AdminLogout drops the admin token once c accepts the prompt
func (s *AuthService) AdminLogout(ctx context.Context, c Confirmer) error {
	if err := confirm(ctx, c, promptAdminLogout); err != nil {
		return err
	}
	s.tokens.Clear(session.Admin)
	s.state.Logout(session.Admin)
	s.notifier.Notify(notify.Successf("Logged Out!", "You have been successfully logged out."))
	return nil
}

// Status reports token presence. A flag whose token has expired is
// logged out here so subscribers see the transition.
func (s *AuthService) Status() Status {
	for _, kind := range []session.Kind{session.Customer, session.Admin} {
		present := s.tokens.Present(kind)
		switch flagged := s.state.LoggedIn(kind); {
		case present && !flagged:
			s.state.Restore(kind)
		case !present && flagged:
			s.log.Info("token expired", "kind", kind.String())
			s.state.Logout(kind)
		}
	}
	return Status{
		LoggedIn:      s.tokens.Present(session.Customer),
		AdminLoggedIn: s.tokens.Present(session.Admin),
		Version:       s.state.Version(),
	}
}
