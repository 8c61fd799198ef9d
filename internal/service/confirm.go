package service

import (
	"context"
	"errors"
)

// ErrNotConfirmed matches every *ConfirmationError
var ErrNotConfirmed = errors.New("action not confirmed")

// Prompt is the question shown before a destructive action
type Prompt struct {
	Title       string `json:"title"`
	Text        string `json:"text"`
	ConfirmText string `json:"confirmText"`
	CancelText  string `json:"cancelText,omitempty"`
}

// Confirmer asks the user to accept a prompt
type Confirmer interface {
	Confirm(ctx context.Context, p Prompt) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, p Prompt) bool

func (f ConfirmFunc) Confirm(ctx context.Context, p Prompt) bool {
	return f(ctx, p)
}

// Confirmed accepts every prompt
var Confirmed = ConfirmFunc(func(context.Context, Prompt) bool { return true })

// Declined rejects every prompt
var Declined = ConfirmFunc(func(context.Context, Prompt) bool { return false })

// ConfirmationError carries the prompt that was declined
type ConfirmationError struct {
	Prompt Prompt
}

func (e *ConfirmationError) Error() string {
	return "not confirmed: " + e.Prompt.Title
}

func (e *ConfirmationError) Is(target error) bool {
	return target == ErrNotConfirmed
}

func confirm(ctx context.Context, c Confirmer, p Prompt) error {
	if c == nil || !c.Confirm(ctx, p) {
		return &ConfirmationError{Prompt: p}
	}
	return nil
}

var (
	promptDeleteItem = Prompt{
		Title:       "Are you sure?",
		Text:        "This item will be permanently deleted.",
		ConfirmText: "Yes, delete it!",
	}
	promptCancelOrder = Prompt{
		Title:       "Cancel this order?",
		Text:        "This action cannot be undone.",
		ConfirmText: "Yes, cancel it!",
	}
	promptAdminLogout = Prompt{
		Title:       "Are you sure?",
		Text:        "You will be logged out of the admin panel.",
		ConfirmText: "Yes, Logout",
		CancelText:  "Cancel",
	}
	promptExitCheckout = Prompt{
		Title:       "Exit Checkout?",
		Text:        "Your delivery details will not be saved.",
		ConfirmText: "Yes, Exit",
		CancelText:  "Stay",
	}
)
