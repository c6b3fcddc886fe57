package contracts

import (
	"context"
	"time"
)

// LockerService guards template seeding across processes. TryLock returns the
// token that Unlock must present.
type LockerService interface {
	TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error)
	Unlock(ctx context.Context, key, lockValue string) error
}
