package fs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softgrid/tabula/pkg/core"
)

func collectChanges(t *testing.T, events <-chan core.Event, wait time.Duration) map[string]int {
	t.Helper()
	got := make(map[string]int)
	deadline := time.After(wait)
	for {
		select {
		case e := <-events:
			if e.Type == core.EventExternalChange {
				got[e.Resource]++
			}
		case <-deadline:
			return got
		}
	}
}

func TestWatcherReportsExternalWrite(t *testing.T) {
	store := newTestStore(t)
	notifier := core.NewNotifier(core.DefaultEventBuffer)
	defer notifier.Close()
	events, cancel := notifier.Subscribe()
	defer cancel()

	w := NewWatcher(store, "", notifier, nil)
	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	require.NoError(t, w.Start(ctx))
	defer w.Stop(context.Background())

	// Simulate another program rewriting a table.
	path := filepath.Join(store.Root(), "en.csv")
	require.NoError(t, os.WriteFile(path, []byte("Id,Text,Context\n"), 0644))

	got := collectChanges(t, events, 500*time.Millisecond)
	assert.Equal(t, 1, got["en.csv"], "burst of fs events must collapse into one change")
}

func TestWatcherRespectsPattern(t *testing.T) {
	store := newTestStore(t)
	notifier := core.NewNotifier(core.DefaultEventBuffer)
	defer notifier.Close()
	events, cancel := notifier.Subscribe()
	defer cancel()

	w := NewWatcher(store, "**/*.csv", notifier, nil)
	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	require.NoError(t, w.Start(ctx))
	defer w.Stop(context.Background())

	require.NoError(t, os.WriteFile(filepath.Join(store.Root(), "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(store.Root(), "ko.csv"), []byte("Id,Text,Context\n"), 0644))

	got := collectChanges(t, events, 500*time.Millisecond)
	assert.Contains(t, got, "ko.csv")
	assert.NotContains(t, got, "notes.txt")
}

func TestWatcherIgnoresOwnTempFiles(t *testing.T) {
	store := newTestStore(t)
	notifier := core.NewNotifier(core.DefaultEventBuffer)
	defer notifier.Close()
	events, cancel := notifier.Subscribe()
	defer cancel()

	w := NewWatcher(store, "", notifier, nil)
	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	require.NoError(t, w.Start(ctx))
	defer w.Stop(context.Background())

	tmp := filepath.Join(store.Root(), TempFilePrefix+"12345")
	require.NoError(t, os.WriteFile(tmp, []byte("partial"), 0644))

	got := collectChanges(t, events, 300*time.Millisecond)
	assert.Empty(t, got)
}

func TestWatcherDoubleStartRejected(t *testing.T) {
	store := newTestStore(t)
	notifier := core.NewNotifier(core.DefaultEventBuffer)
	defer notifier.Close()

	w := NewWatcher(store, "", notifier, nil)
	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	require.NoError(t, w.Start(ctx))
	defer w.Stop(context.Background())

	assert.Error(t, w.Start(ctx))
}

func TestDebouncerCoalesces(t *testing.T) {
	d := newDebouncer(30 * time.Millisecond)
	fired := make(chan string, 10)
	for i := 0; i < 5; i++ {
		d.add("en.csv", func() { fired <- "en.csv" })
	}
	d.add("ko.csv", func() { fired <- "ko.csv" })

	time.Sleep(100 * time.Millisecond)
	d.stopAndWait(time.Second)
	close(fired)

	counts := make(map[string]int)
	for name := range fired {
		counts[name]++
	}
	assert.Equal(t, map[string]int{"en.csv": 1, "ko.csv": 1}, counts)
}
