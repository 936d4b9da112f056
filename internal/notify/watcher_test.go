package notify_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ganot/dashview/internal/mirror"
	"github.com/ganot/dashview/internal/notify"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestWatcherPublishesOnMirrorWrite(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := mirror.NewFileStore(dir)
	require.NoError(t, err)

	bus := notify.NewMemoryBus()
	var got atomic.Int32
	cancel := bus.Subscribe("projects.changed", func() { got.Add(1) })
	defer cancel()

	w := notify.NewWatcher(dir, bus, map[string]string{"projects": "projects.changed"},
		notify.WithDebounce(20*time.Millisecond))
	require.NoError(t, w.Start(ctx))
	defer w.Close()

	require.NoError(t, store.Set(ctx, "projects", []byte(`[]`)))
	waitFor(t, func() bool { return got.Load() >= 1 })
}

func TestWatcherIgnoresUnmappedKeys(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := mirror.NewFileStore(dir)
	require.NoError(t, err)

	bus := notify.NewMemoryBus()
	var projects, orders atomic.Int32
	c1 := bus.Subscribe("projects.changed", func() { projects.Add(1) })
	defer c1()
	c2 := bus.Subscribe("orders.changed", func() { orders.Add(1) })
	defer c2()

	w := notify.NewWatcher(dir, bus, map[string]string{"projects": "projects.changed"},
		notify.WithDebounce(20*time.Millisecond))
	require.NoError(t, w.Start(ctx))
	defer w.Close()

	require.NoError(t, store.Set(ctx, "orders", []byte(`[]`)))
	require.NoError(t, store.Set(ctx, "projects", []byte(`[]`)))

	waitFor(t, func() bool { return projects.Load() >= 1 })
	assert.Zero(t, orders.Load())
}

func TestWatcherDebouncesBursts(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := mirror.NewFileStore(dir)
	require.NoError(t, err)

	bus := notify.NewMemoryBus()
	var got atomic.Int32
	cancel := bus.Subscribe("invoices.changed", func() { got.Add(1) })
	defer cancel()

	w := notify.NewWatcher(dir, bus, map[string]string{"invoices": "invoices.changed"},
		notify.WithDebounce(150*time.Millisecond))
	require.NoError(t, w.Start(ctx))
	defer w.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Set(ctx, "invoices", []byte(`[]`)))
	}

	waitFor(t, func() bool { return got.Load() >= 1 })
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), got.Load())
}

func TestWatcherStartTwice(t *testing.T) {
	w := notify.NewWatcher(t.TempDir(), notify.NewMemoryBus(), nil)
	require.NoError(t, w.Start(context.Background()))
	defer w.Close()

	assert.ErrorIs(t, w.Start(context.Background()), notify.ErrAlreadyStarted)
}

func TestWatcherCloseWithoutStart(t *testing.T) {
	w := notify.NewWatcher(t.TempDir(), notify.NewMemoryBus(), nil)
	assert.NoError(t, w.Close())
}

func TestWatcherStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	dir := t.TempDir()
	store, err := mirror.NewFileStore(dir)
	require.NoError(t, err)

	bus := notify.NewMemoryBus()
	var got atomic.Int32
	sub := bus.Subscribe("projects.changed", func() { got.Add(1) })
	defer sub()

	w := notify.NewWatcher(dir, bus, map[string]string{"projects": "projects.changed"},
		notify.WithDebounce(10*time.Millisecond))
	require.NoError(t, w.Start(ctx))

	cancel()
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, store.Set(context.Background(), "projects", []byte(`[]`)))
	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, got.Load())
}
