package lock

import (
	"context"
	"sync"
	"time"
)

type localLocker struct {
	mu    sync.Mutex
	held  map[string]uint64
	nonce uint64
	now   func() time.Time
	until map[string]time.Time
}

// NewLocalLocker keeps leases in memory. Suitable for a single instance and for tests.
func NewLocalLocker() Locker {
	return &localLocker{
		held:  make(map[string]uint64),
		until: make(map[string]time.Time),
		now:   time.Now,
	}
}

func (l *localLocker) Obtain(_ context.Context, key string, ttl time.Duration) (Lease, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[key]; ok && l.now().Before(l.until[key]) {
		return nil, ErrNotObtained
	}
	l.nonce++
	l.held[key] = l.nonce
	l.until[key] = l.now().Add(ttl)
	return &localLease{locker: l, key: key, token: l.nonce}, nil
}

type localLease struct {
	locker *localLocker
	key    string
	token  uint64
}

func (ls *localLease) Release(context.Context) error {
	l := ls.locker
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held[ls.key] != ls.token {
		return errLeaseLost
	}
	delete(l.held, ls.key)
	delete(l.until, ls.key)
	return nil
}
