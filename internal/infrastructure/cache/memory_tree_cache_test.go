package cache

import (
	"context"
	"testing"
	"time"

	ledgerapp "github.com/erp/ledger/internal/application/ledger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSnapshot(generation int64, names ...string) *ledgerapp.AccountSnapshot {
	accounts := make([]ledgerapp.AccountResponse, 0, len(names))
	for i, name := range names {
		accounts = append(accounts, ledgerapp.AccountResponse{
			ID:     uuid.New(),
			Name:   name,
			Code:   string(rune('1'+i)) + "000",
			Nature: "debit",
		})
	}
	return &ledgerapp.AccountSnapshot{
		Accounts:    accounts,
		Generation:  generation,
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestInMemoryTreeCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss on empty cache", func(t *testing.T) {
		c := NewInMemoryTreeCache()
		snap, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, snap)

		gen, err := c.Generation(ctx)
		require.NoError(t, err)
		assert.Zero(t, gen)
	})

	t.Run("hit after set", func(t *testing.T) {
		c := NewInMemoryTreeCache()
		require.NoError(t, c.Set(ctx, newSnapshot(0, "Assets", "Cash"), time.Minute))

		snap, ok, err := c.Get(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		require.Len(t, snap.Accounts, 2)
		assert.Equal(t, "Cash", snap.Accounts[1].Name)
	})

	t.Run("expires after ttl", func(t *testing.T) {
		c := NewInMemoryTreeCache()
		now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		c.now = func() time.Time { return now }

		require.NoError(t, c.Set(ctx, newSnapshot(0, "Assets"), 30*time.Second))
		now = now.Add(29 * time.Second)
		_, ok, _ := c.Get(ctx)
		assert.True(t, ok)

		now = now.Add(time.Second)
		_, ok, _ = c.Get(ctx)
		assert.False(t, ok)
	})

	t.Run("invalidate drops entry and advances generation", func(t *testing.T) {
		c := NewInMemoryTreeCache()
		require.NoError(t, c.Set(ctx, newSnapshot(0, "Assets"), time.Minute))
		require.NoError(t, c.Invalidate(ctx))

		_, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		gen, err := c.Generation(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), gen)
	})

	t.Run("set from an older generation is dropped", func(t *testing.T) {
		c := NewInMemoryTreeCache()
		gen, err := c.Generation(ctx)
		require.NoError(t, err)

		// a write commits and invalidates while the reader is still loading
		require.NoError(t, c.Invalidate(ctx))
		require.NoError(t, c.Set(ctx, newSnapshot(gen, "Assets"), time.Minute))

		_, ok, err := c.Get(ctx)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, c.Set(ctx, newSnapshot(gen+1, "Assets", "Cash"), time.Minute))
		snap, ok, err := c.Get(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Len(t, snap.Accounts, 2)
	})

	t.Run("non-positive ttl clears", func(t *testing.T) {
		c := NewInMemoryTreeCache()
		require.NoError(t, c.Set(ctx, newSnapshot(0, "Assets"), time.Minute))
		require.NoError(t, c.Set(ctx, newSnapshot(0, "Assets"), 0))

		_, ok, _ := c.Get(ctx)
		assert.False(t, ok)
	})
}
