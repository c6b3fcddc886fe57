package contracts

import (
	"context"
	"time"
)

type RedisRepository interface {
	Delete(ctx context.Context, key string) error
	Set(ctx context.Context, key string, value interface{}, exp time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	TrySetNX(ctx context.Context, key, value string, exp time.Duration) (bool, error)
	// CompareAndDelete deletes key in one step only while it still holds
	// value. found reports whether key existed at all.
	CompareAndDelete(ctx context.Context, key, value string) (deleted, found bool, err error)
}
