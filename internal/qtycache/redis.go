package qtycache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const scanBatch = 100

// Redis keeps the entries of one session under "<prefix>:<session>:count of <id>"
type Redis struct {
	client    redis.Cmdable
	namespace string
	ttl       time.Duration
}

// NewRedis creates a session-scoped cache on client
func NewRedis(client redis.Cmdable, prefix, sessionID string, ttl time.Duration) *Redis {
	return &Redis{
		client:    client,
		namespace: prefix + ":" + sessionID + ":",
		ttl:       ttl,
	}
}

// RedisFactory shares one client across sessions
func RedisFactory(client redis.Cmdable, prefix string, ttl time.Duration) Factory {
	return func(sessionID string) Cache { return NewRedis(client, prefix, sessionID, ttl) }
}

func (r *Redis) key(foodID string) string {
	return r.namespace + Key(foodID)
}

func (r *Redis) Get(ctx context.Context, foodID string) (int, error) {
	value, err := r.client.Get(ctx, r.key(foodID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrMiss
	}
	if err != nil {
		return 0, err
	}
	count, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("corrupt cache entry %s: %w", r.key(foodID), err)
	}
	return count, nil
}

func (r *Redis) Set(ctx context.Context, foodID string, count int) error {
	return r.client.Set(ctx, r.key(foodID), count, r.ttl).Err()
}

// Clear removes every entry of the session
func (r *Redis) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.namespace+"*", scanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
