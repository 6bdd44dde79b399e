package ports

import (
	"context"
	"time"
)

// DedupStore is a shared key-value store supporting the single atomic
// operation the notification throttle needs: create-if-absent with expiry.
//
// The atomicity requirement is the whole point of the interface: a
// check-then-set pair would leave a race window in which two overlapping
// scheduler ticks both decide to notify.
type DedupStore interface {
	// SetIfAbsent atomically creates the key with the given time-to-live.
	// Returns true when the key was created (caller owns the window) and
	// false when it already existed and has not expired.
	SetIfAbsent(ctx context.Context, key string, ttl time.Duration) (bool, error)
}
