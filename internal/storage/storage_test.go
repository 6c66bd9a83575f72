package storage

import (
	"context"
	"path/filepath"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type countingObserver struct {
	reads, writes, corrupt int
}

func (c *countingObserver) ObserveRead(string)    { c.reads++ }
func (c *countingObserver) ObserveWrite(string)   { c.writes++ }
func (c *countingObserver) ObserveCorrupt(string) { c.corrupt++ }

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	sqliteBackend, err := OpenSQLite(filepath.Join(t.TempDir(), "kv", "test.db"))
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	out := map[string]Backend{
		"memory": NewMemoryBackend(),
		"sqlite": sqliteBackend,
		"redis":  NewRedisBackend(client, "test:"),
	}
	t.Cleanup(func() {
		for _, b := range out {
			_ = b.Close()
		}
	})
	return out
}

func TestInitializeIsIdempotent(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := New(backend)
			require.NoError(t, store.Initialize(ctx))

			require.NoError(t, WriteCollection(ctx, store, KeySuppliers, []record{{ID: "1", Name: "Avi"}}))
			require.NoError(t, store.Initialize(ctx))

			got, err := ReadCollection[record](ctx, store, KeySuppliers)
			require.NoError(t, err)
			assert.Equal(t, []record{{ID: "1", Name: "Avi"}}, got)

			orders, err := ReadCollection[record](ctx, store, KeyOrders)
			require.NoError(t, err)
			assert.Empty(t, orders)
			assert.NotNil(t, orders)
		})
	}
}

func TestReadCollectionTreatsCorruptDataAsEmpty(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			obs := &countingObserver{}
			store := New(backend, WithObserver(obs))
			require.NoError(t, backend.Set(ctx, KeyOrders, []byte("{not json")))

			got, err := ReadCollection[record](ctx, store, KeyOrders)
			require.NoError(t, err)
			assert.Empty(t, got)
			assert.Equal(t, 1, obs.corrupt)

			// initialize must not repair or overwrite an existing value
			require.NoError(t, store.Initialize(ctx))
			raw, ok, err := backend.Get(ctx, KeyOrders)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, "{not json", string(raw))
		})
	}
}

func TestReadCollectionMissingKey(t *testing.T) {
	store := New(NewMemoryBackend())
	got, err := ReadCollection[record](context.Background(), store, "absent")
	require.NoError(t, err)
	assert.Equal(t, []record{}, got)
}

func TestWriteCollectionsReplacesBothKeys(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := New(backend)
			require.NoError(t, store.Initialize(ctx))

			err := store.WriteCollections(ctx, map[string]any{
				KeySuppliers: []record{{ID: "s1"}},
				KeyOrders:    []record{{ID: "o1"}, {ID: "o2"}},
			})
			require.NoError(t, err)

			suppliers, err := ReadCollection[record](ctx, store, KeySuppliers)
			require.NoError(t, err)
			orders, err := ReadCollection[record](ctx, store, KeyOrders)
			require.NoError(t, err)
			assert.Len(t, suppliers, 1)
			assert.Len(t, orders, 2)
		})
	}
}

func TestWriteCollectionsEncodeFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	store := New(NewMemoryBackend())
	require.NoError(t, store.Initialize(ctx))

	err := store.WriteCollections(ctx, map[string]any{
		KeySuppliers: []record{{ID: "s1"}},
		KeyOrders:    make(chan int),
	})
	require.Error(t, err)

	suppliers, err := ReadCollection[record](ctx, store, KeySuppliers)
	require.NoError(t, err)
	assert.Empty(t, suppliers)
}

func TestReadWriteValue(t *testing.T) {
	ctx := context.Background()
	store := New(NewMemoryBackend())

	_, ok, err := ReadValue[int64](ctx, store, KeyOrderSequence)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, WriteValue(ctx, store, KeyOrderSequence, int64(1042)))
	got, ok, err := ReadValue[int64](ctx, store, KeyOrderSequence)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1042), got)
}

func TestClosedMemoryBackend(t *testing.T) {
	backend := NewMemoryBackend()
	require.NoError(t, backend.Close())
	_, _, err := backend.Get(context.Background(), KeyOrders)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestOpenBackendRejectsUnknownDriver(t *testing.T) {
	_, err := OpenBackend(context.Background(), BackendConfig{Driver: "etcd"})
	require.Error(t, err)
}
