package lock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ledger_recon_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker_Exclusive(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLocker()

	lease, err := l.Obtain(ctx, "k", time.Minute)
	require.NoError(t, err)

	_, err = l.Obtain(ctx, "k", time.Minute)
	assert.ErrorIs(t, err, ErrNotObtained)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = l.Obtain(ctx, "other", time.Minute)
	assert.NoError(t, err)

	require.NoError(t, lease.Release(ctx))
	_, err = l.Obtain(ctx, "k", time.Minute)
	assert.NoError(t, err)
}

func TestLocalLocker_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLocalLocker().(*localLocker)
	l.now = func() time.Time { return now }

	stale, err := l.Obtain(ctx, "k", time.Second)
	require.NoError(t, err)

	now = now.Add(2 * time.Second)
	fresh, err := l.Obtain(ctx, "k", time.Second)
	require.NoError(t, err)

	assert.ErrorIs(t, stale.Release(ctx), errLeaseLost, "expired lease must not release the new holder")
	_, err = l.Obtain(ctx, "k", time.Second)
	assert.ErrorIs(t, err, ErrNotObtained)
	assert.NoError(t, fresh.Release(ctx))
}

func TestWithLock(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLocker()
	key := Key("bank-account", "BA1")
	assert.Equal(t, "lock:bank-account:BA1", key)

	boom := errors.New("boom")
	err := WithLock(ctx, l, key, time.Minute, func() error {
		_, inner := l.Obtain(ctx, key, time.Minute)
		assert.ErrorIs(t, inner, ErrNotObtained)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// released after fn returns, even on error
	assert.NoError(t, WithLock(ctx, l, key, time.Minute, func() error { return nil }))
}
