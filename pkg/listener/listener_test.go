package listener

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListener_Batches(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lib"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0755))

	l, err := New(Config{
		Root:       root,
		Latency:    50 * time.Millisecond,
		Ignore:     []string{"*.swp"},
		SkipHidden: true,
	})
	require.NoError(t, err)

	var mu sync.Mutex
	var got []string
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- l.Listen(ctx, func(paths []string) {
			mu.Lock()
			got = append(got, paths...)
			mu.Unlock()
		})
	}()

	// give the listener time to register its watches
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(root, "lib", "guard.rb"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "lib", "guard.rb.swp"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "index"), []byte("x"), 0644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) > 0
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Contains(t, got, "lib/guard.rb")
	assert.NotContains(t, got, "lib/guard.rb.swp")
	assert.NotContains(t, got, ".git/index")
}

func TestListener_RunsOnce(t *testing.T) {
	l, err := New(Config{Root: t.TempDir()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Listen(ctx, func([]string) {}) }()

	require.Eventually(t, func() bool {
		l.mu.Lock()
		defer l.mu.Unlock()
		return l.running
	}, time.Second, 5*time.Millisecond)

	assert.Error(t, l.Listen(ctx, func([]string) {}))
	cancel()
	require.NoError(t, <-done)
}

func TestListener_MissingDir(t *testing.T) {
	root := t.TempDir()
	l, err := New(Config{Root: root, Dirs: []string{"missing"}})
	require.NoError(t, err)

	err = l.Listen(context.Background(), func([]string) {})
	assert.Error(t, err)
}
