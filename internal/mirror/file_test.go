package mirror_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ganot/dashview/internal/mirror"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := mirror.NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "projects", []byte(`[{"id":"1"}]`)))

	data, err := store.Get(ctx, "projects")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(data))

	// Overwrite replaces the whole document.
	require.NoError(t, store.Set(ctx, "projects", []byte(`[]`)))
	data, err = store.Get(ctx, "projects")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestFileStoreGetMissing(t *testing.T) {
	store, err := mirror.NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, mirror.ErrNotFound)
}

func TestFileStoreDelete(t *testing.T) {
	ctx := context.Background()
	store, err := mirror.NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "orders", []byte(`[]`)))
	require.NoError(t, store.Delete(ctx, "orders"))

	_, err = store.Get(ctx, "orders")
	assert.ErrorIs(t, err, mirror.ErrNotFound)

	// Deleting a missing key is not an error.
	assert.NoError(t, store.Delete(ctx, "orders"))
}

func TestFileStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := mirror.NewFileStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := mirror.NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "invoices", []byte(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "invoices.json", entries[0].Name())
}

func TestKeyForPath(t *testing.T) {
	store, err := mirror.NewFileStore(t.TempDir())
	require.NoError(t, err)

	key, ok := mirror.KeyForPath(store.Path("projects"))
	assert.True(t, ok)
	assert.Equal(t, "projects", key)

	_, ok = mirror.KeyForPath("/data/projects.tmp")
	assert.False(t, ok)

	_, ok = mirror.KeyForPath("/data/.json")
	assert.False(t, ok)
}
