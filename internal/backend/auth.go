package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

// ErrLoginRejected is returned when the backend answers 2xx without a usable token
var ErrLoginRejected = errors.New("login rejected")

// Register creates a customer account
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/register", "", req, nil)
}

// Login exchanges customer credentials for a bearer token
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/login", "", req, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", ErrLoginRejected
	}
	return resp.Token, nil
}

// AdminLogin exchanges admin credentials for a bearer token
func (c *Client) AdminLogin(ctx context.Context, req models.AdminLoginRequest) (models.AdminLoginResponse, error) {
	var resp models.AdminLoginResponse
	if err := c.do(ctx, http.MethodPost, "/admin/login", "", req, &resp); err != nil {
		return resp, err
	}
	if !resp.Success || resp.Token == "" {
		return resp, ErrLoginRejected
	}
	return resp, nil
}
