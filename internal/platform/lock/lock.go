// Package lock serializes mutating operations on a shared resource such as a bank
// account or the customer book. Redis is used when configured so that several API
// instances agree; otherwise locks are held in-process.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_recon_app/internal/apperrors"
)

// ErrNotObtained is returned when another holder owns the lock.
var ErrNotObtained = fmt.Errorf("%w: resource is busy, try again", apperrors.ErrConflict)

// Lease is a held lock.
type Lease interface {
	Release(ctx context.Context) error
}

// Locker hands out exclusive leases on keys. A lease expires after ttl even if it is never
// released.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (Lease, error)
}

// WithLock runs fn while holding key. The lease is released when fn returns.
func WithLock(ctx context.Context, l Locker, key string, ttl time.Duration, fn func() error) (err error) {
	lease, err := l.Obtain(ctx, key, ttl)
	if err != nil {
		return err
	}
	defer func() {
		if relErr := lease.Release(context.WithoutCancel(ctx)); relErr != nil && err == nil && !errors.Is(relErr, errLeaseLost) {
			err = relErr
		}
	}()
	return fn()
}

// errLeaseLost means the lease expired before release. The work already completed, so
// callers do not see it.
var errLeaseLost = errors.New("lease already expired")

// Key builds a namespaced lock key, e.g. Key("bank-account", id) -> "lock:bank-account:<id>".
func Key(kind, id string) string {
	return fmt.Sprintf("lock:%s:%s", kind, id)
}
