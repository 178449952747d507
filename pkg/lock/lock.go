// Package lock provides short-lived mutual exclusion keyed by string.
package lock

import (
	"context"
	"errors"
	"time"
)

// ErrNotAcquired is returned when the key is held elsewhere and the wait
// budget ran out.
var ErrNotAcquired = errors.New("lock not acquired")

// Unlock releases a held lock. It is safe to call once.
type Unlock func(ctx context.Context) error

// Locker hands out exclusive leases on keys. A lease expires after ttl even
// when the holder never unlocks.
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (Unlock, error)
}

// NoopLocker grants every lock immediately.
type NoopLocker struct{}

func (NoopLocker) Lock(context.Context, string, time.Duration) (Unlock, error) {
	return func(context.Context) error { return nil }, nil
}
