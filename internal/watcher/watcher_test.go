package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnSnapshotWrite(t *testing.T) {
	dir := t.TempDir()
	snapshot := filepath.Join(dir, "search.index")

	var reloads atomic.Int32
	var gotProject atomic.Value
	w, err := New(50*time.Millisecond, func(projectPath string) {
		gotProject.Store(projectPath)
		reloads.Add(1)
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Watch("/tmp/proj", snapshot))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	require.NoError(t, os.WriteFile(snapshot, []byte(`{"documents":{}}`), 0o644))

	require.Eventually(t, func() bool {
		return reloads.Load() == 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "/tmp/proj", gotProject.Load())
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	snapshot := filepath.Join(dir, "search.index")

	var reloads atomic.Int32
	w, err := New(100*time.Millisecond, func(string) {
		reloads.Add(1)
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Watch("/tmp/proj", snapshot))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	// A burst of rapid writes coalesces into a single reload.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(snapshot, []byte(`{}`), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return reloads.Load() >= 1
	}, 2*time.Second, 10*time.Millisecond)

	// No further reloads arrive after the window settles.
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), reloads.Load())
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	snapshot := filepath.Join(dir, "search.index")

	var reloads atomic.Int32
	w, err := New(50*time.Millisecond, func(string) {
		reloads.Add(1)
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Watch("/tmp/proj", snapshot))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(0), reloads.Load())
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	w, err := New(0, func(string) {})
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
