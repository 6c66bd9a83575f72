package blob

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	info, err := store.Put(ctx, "backups/a.json", strings.NewReader(`{"v":1}`), "application/json")
	require.NoError(t, err)
	assert.Equal(t, "backups/a.json", info.Key)
	assert.EqualValues(t, 7, info.Size)

	_, err = store.Put(ctx, "reports/r.xlsx", strings.NewReader("xlsx"), "")
	require.NoError(t, err)
	_, err = store.Put(ctx, "backups/a.json", strings.NewReader(`{"v":2}`), "application/json")
	require.NoError(t, err)

	_, body, err := store.Get(ctx, "backups/a.json")
	require.NoError(t, err)
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.NoError(t, body.Close())
	assert.Equal(t, `{"v":2}`, string(data))

	listed, err := store.List(ctx, "backups/")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "backups/a.json", listed[0].Key)

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	removed, err := store.Delete(ctx, "backups/a.json")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = store.Delete(ctx, "backups/a.json")
	require.NoError(t, err)
	assert.False(t, removed)

	_, _, err = store.Get(ctx, "backups/a.json")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Put(ctx, "../escape", strings.NewReader("x"), "")
	assert.Error(t, err)
	_, err = store.Put(ctx, "/abs", strings.NewReader("x"), "")
	assert.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestFilesystemStore(t *testing.T) {
	store, err := NewFilesystem(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DriverFilesystem, store.Driver())
	exerciseStore(t, store)

	_, err = store.Put(context.Background(), "reports/m.xlsx", strings.NewReader("xlsx"), "")
	require.NoError(t, err)
	listed, err := store.List(context.Background(), "reports/")
	require.NoError(t, err)
	require.NotEmpty(t, listed)
	for _, info := range listed {
		if info.Key == "reports/m.xlsx" {
			assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", info.ContentType)
		}
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, Config{Driver: DriverMemory})
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, store.Driver())

	store, err = Open(ctx, Config{Root: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, DriverFilesystem, store.Driver())

	_, err = Open(ctx, Config{Driver: "tape"})
	assert.Error(t, err)

	_, err = Open(ctx, Config{Driver: DriverS3})
	assert.Error(t, err)
}
