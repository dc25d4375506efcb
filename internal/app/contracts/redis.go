package contracts

import (
	"context"
	"time"
)

type RedisRepository interface {
	Delete(ctx context.Context, key string) error
	// Set stores value JSON encoded.
	Set(ctx context.Context, key string, value interface{}, exp time.Duration) error
	// Get returns an empty string and no error when the key does not exist.
	Get(ctx context.Context, key string) (string, error)
	Expire(ctx context.Context, key string, exp time.Duration) (bool, error)
	TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
}
