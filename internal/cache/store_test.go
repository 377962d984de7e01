package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("set then get round-trips", func(t *testing.T) {
		store := NewMemoryStore(time.Minute)
		store.Set(ctx, RoomList(7), []byte(`{"rooms":[]}`))

		payload, ok := store.Get(ctx, RoomList(7))
		require.True(t, ok)
		assert.Equal(t, []byte(`{"rooms":[]}`), payload)
	})

	t.Run("miss on unknown key", func(t *testing.T) {
		store := NewMemoryStore(time.Minute)
		_, ok := store.Get(ctx, RoomList(7))
		assert.False(t, ok)
	})

	t.Run("entries expire after the TTL", func(t *testing.T) {
		store := NewMemoryStore(time.Millisecond)
		store.Set(ctx, Invoices(7), []byte(`{}`))

		time.Sleep(5 * time.Millisecond)

		_, ok := store.Get(ctx, Invoices(7))
		assert.False(t, ok)
	})

	t.Run("invalidate drops exactly the named keys", func(t *testing.T) {
		store := NewMemoryStore(time.Minute)
		store.Set(ctx, RoomList(7), []byte(`a`))
		store.Set(ctx, TenantList(7), []byte(`b`))
		store.Set(ctx, RoomList(8), []byte(`c`))

		store.Invalidate(ctx, RoomList(7))

		_, ok := store.Get(ctx, RoomList(7))
		assert.False(t, ok)
		_, ok = store.Get(ctx, TenantList(7))
		assert.True(t, ok, "other keys survive")
		_, ok = store.Get(ctx, RoomList(8))
		assert.True(t, ok, "same kind on another property survives")
	})

	t.Run("invalidating an absent key is a no-op", func(t *testing.T) {
		store := NewMemoryStore(time.Minute)
		store.Invalidate(ctx, ContractDetail(7, 42))
		assert.Equal(t, 0, store.Len())
	})

	t.Run("finalize cascade drops all five views at once", func(t *testing.T) {
		store := NewMemoryStore(time.Minute)
		keys := []Key{
			ContractList(7),
			ContractDetail(7, 42),
			AvailableRooms(7),
			AvailableTenants(7),
			Invoices(7),
		}
		for _, key := range keys {
			store.Set(ctx, key, []byte(`x`))
		}
		store.Set(ctx, FloorList(7), []byte(`keep`))

		store.Invalidate(ctx, keys...)

		for _, key := range keys {
			_, ok := store.Get(ctx, key)
			assert.False(t, ok, "key %s should be gone", key)
		}
		_, ok := store.Get(ctx, FloorList(7))
		assert.True(t, ok)
	})
}
