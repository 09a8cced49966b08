// Package idgen provides the identifier sources injected into the engines.
package idgen

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Generator returns a new unique opaque identifier. Implementations must be collision-free.
type Generator interface {
	NewID() string
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func() string

func (f GeneratorFunc) NewID() string { return f() }

// UUID generates random (v4) UUIDs. Used for customers, ledgers and transactions.
func UUID() Generator {
	return GeneratorFunc(uuid.NewString)
}

// ULID generates lexicographically sortable ids. Used for append-only audit entries so
// that id order follows creation order.
func ULID() Generator {
	entropy := &lockedEntropy{r: ulid.Monotonic(rand.Reader, 0)}
	return GeneratorFunc(func() string {
		return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
	})
}

// ulid.MonotonicEntropy is not safe for concurrent use.
type lockedEntropy struct {
	mu sync.Mutex
	r  *ulid.MonotonicEntropy
}

func (e *lockedEntropy) Read(p []byte) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.r.Read(p)
}

func (e *lockedEntropy) MonotonicRead(ms uint64, p []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.r.MonotonicRead(ms, p)
}
