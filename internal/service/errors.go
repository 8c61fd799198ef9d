package service

import (
	"errors"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/backend"
)

var (
	ErrSignInRequired      = errors.New("customer sign in required")
	ErrAdminSignInRequired = errors.New("admin sign in required")
	ErrMissingAddress      = errors.New("all address fields are required")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrCheckoutFailed      = errors.New("checkout failed")
	ErrCartNotCleared      = errors.New("order placed but cart could not be cleared")
	ErrInvalidItem         = errors.New("all item fields are required")
	ErrInvalidPrice        = errors.New("price must be a positive number")
	ErrInvalidStatus       = errors.New("unknown order status")
)

// backendMessage returns the message the backend attached to err, or fallback.
// Transport failures (no response at all) yield transport instead.
func backendMessage(err error, fallback, transport string) string {
	var apiErr *backend.Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}
	if errors.Is(err, backend.ErrLoginRejected) {
		return fallback
	}
	return transport
}

// isTransport reports whether err never reached the backend
func isTransport(err error) bool {
	var apiErr *backend.Error
	return !errors.As(err, &apiErr) && !errors.Is(err, backend.ErrLoginRejected)
}
