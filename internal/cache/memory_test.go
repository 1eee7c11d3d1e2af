package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreGetSet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	_, ok := store.Get(ctx, NamespaceURL, "missing")
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, NamespaceURL, "a", []byte("payload")))
	got, ok := store.Get(ctx, NamespaceURL, "a")
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), got)
}

func TestMemoryStoreNamespacesAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	require.NoError(t, store.Set(ctx, NamespaceSupplier, "acme", []byte("s")))

	_, ok := store.Get(ctx, NamespaceURL, "acme")
	assert.False(t, ok)
	_, ok = store.Get(ctx, NamespaceSupplier, "acme")
	assert.True(t, ok)
}

func TestMemoryStoreLazyExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	now := time.Now()
	store.now = func() time.Time { return now }
	require.NoError(t, store.Set(ctx, NamespaceURL, "a", []byte("payload")))

	// Just before the TTL the entry is still served.
	store.now = func() time.Time { return now.Add(time.Hour - time.Second) }
	_, ok := store.Get(ctx, NamespaceURL, "a")
	assert.True(t, ok)

	// Past the TTL the read deletes the entry.
	store.now = func() time.Time { return now.Add(time.Hour + time.Second) }
	_, ok = store.Get(ctx, NamespaceURL, "a")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())

	// A later read well inside a fresh TTL window still misses.
	store.now = func() time.Time { return now }
	_, ok = store.Get(ctx, NamespaceURL, "a")
	assert.False(t, ok)
}

func TestKeyNormalization(t *testing.T) {
	assert.Equal(t, "acme corp", SupplierKey("  Acme Corp "))
	assert.Equal(t, "https://example.com/p/1", URLKey(" https://example.com/p/1\n"))
}
