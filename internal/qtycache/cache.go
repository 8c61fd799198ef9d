// Package qtycache mirrors per-item cart quantities for fast re-renders.
// Entries are best-effort hints, never the authority on cart contents.
package qtycache

import (
	"context"
	"errors"
)

var ErrMiss = errors.New("cache miss")

// Cache stores the last known quantity per food item for one browser session
type Cache interface {
	Get(ctx context.Context, foodID string) (int, error)
	Set(ctx context.Context, foodID string, count int) error
	Clear(ctx context.Context) error
}

// Factory builds the cache scoped to one browser session
type Factory func(sessionID string) Cache

// Key is the entry name of foodID
func Key(foodID string) string {
	return "count of " + foodID
}
