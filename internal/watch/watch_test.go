package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/lualint/internal/testutil"
)

func TestRun_DebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	batches := make(chan []string, 4)
	w := New([]string{dir}, func(p string) bool { return strings.HasSuffix(p, ".lua") },
		WithDebounce(50*time.Millisecond), WithLogger(testutil.NewTestLogger(t)))

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, changed []string) {
			batches <- changed
		})
	}()

	// give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)

	a := filepath.Join(dir, "a.lua")
	b := filepath.Join(dir, "b.lua")
	require.NoError(t, os.WriteFile(a, []byte("return 1\n"), 0600))
	require.NoError(t, os.WriteFile(b, []byte("return 2\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600))
	require.NoError(t, os.WriteFile(a, []byte("return 3\n"), 0600))

	select {
	case changed := <-batches:
		assert.Equal(t, []string{a, b}, changed)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRun_MissingRoot(t *testing.T) {
	w := New([]string{filepath.Join(t.TempDir(), "missing")}, nil)
	err := w.Run(context.Background(), func(context.Context, []string) {})
	assert.Error(t, err)
}
