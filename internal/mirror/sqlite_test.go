package mirror_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ganot/dashview/internal/mirror"
	"github.com/ganot/dashview/internal/sqlite"
)

func newSQLiteStore(t *testing.T) *mirror.SQLiteStore {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations())
	return mirror.NewSQLiteStore(db)
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	require.NoError(t, store.Set(ctx, "projects", []byte(`[{"id":"1"}]`)))

	data, err := store.Get(ctx, "projects")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(data))
}

func TestSQLiteStoreUpsert(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	require.NoError(t, store.Set(ctx, "invoices", []byte(`[]`)))
	require.NoError(t, store.Set(ctx, "invoices", []byte(`[{"id":"2"}]`)))

	data, err := store.Get(ctx, "invoices")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"2"}]`, string(data))
}

func TestSQLiteStoreGetMissing(t *testing.T) {
	store := newSQLiteStore(t)

	_, err := store.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, mirror.ErrNotFound)
}

func TestSQLiteStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	require.NoError(t, store.Set(ctx, "orders", []byte(`[]`)))
	require.NoError(t, store.Delete(ctx, "orders"))

	_, err := store.Get(ctx, "orders")
	assert.ErrorIs(t, err, mirror.ErrNotFound)

	assert.NoError(t, store.Delete(ctx, "orders"))
}

func TestMemoryStoreIsolation(t *testing.T) {
	ctx := context.Background()
	store := mirror.NewMemoryStore()

	value := []byte(`[1,2,3]`)
	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'x'

	data, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[1,2,3]`, string(data))

	// Mutating a returned slice doesn't leak back either.
	data[0] = 'y'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[1,2,3]`, string(again))
}
