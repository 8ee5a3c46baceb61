package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capsulejs/capsule/internal/logging"
)

func TestIgnored(t *testing.T) {
	dir := t.TempDir()
	w := &Watcher{
		root:   dir,
		ignore: []string{"**/node_modules/**", "**/.git/**", "dist/*"},
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"plain source file", filepath.Join(dir, "src", "index.js"), false},
		{"node_modules dependency", filepath.Join(dir, "node_modules", "left-pad", "index.js"), true},
		{"nested node_modules", filepath.Join(dir, "pkg", "node_modules", "x.js"), true},
		{"git internals", filepath.Join(dir, ".git", "HEAD"), true},
		{"dist output", filepath.Join(dir, "dist", "bundle.js"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.ignored(tt.path))
		})
	}
}

func TestWatcherTriggersRebuild(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "index.js")
	require.NoError(t, os.WriteFile(src, []byte("console.log(1);\n"), 0o644))

	w, err := New(Config{Root: dir, RebuildsPerSecond: 100}, logging.NewNop())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rebuilt := make(chan struct{}, 1)
	go w.Run(ctx, func() {
		select {
		case rebuilt <- struct{}{}:
		default:
		}
	})

	// Give the event loop a moment to start before touching the file.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(src, []byte("console.log(2);\n"), 0o644))

	select {
	case <-rebuilt:
	case <-ctx.Done():
		t.Fatal("rebuild was not triggered")
	}
}

func TestWatcherIgnoresFilteredPaths(t *testing.T) {
	dir := t.TempDir()
	dep := filepath.Join(dir, "node_modules")
	require.NoError(t, os.Mkdir(dep, 0o755))

	w, err := New(Config{
		Root:              dir,
		Ignore:            []string{"**/node_modules/**"},
		RebuildsPerSecond: 100,
	}, logging.NewNop())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	rebuilt := make(chan struct{}, 1)
	go w.Run(ctx, func() {
		select {
		case rebuilt <- struct{}{}:
		default:
		}
	})

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dep, "pkg.js"), []byte("x"), 0o644))

	select {
	case <-rebuilt:
		t.Fatal("ignored path triggered a rebuild")
	case <-ctx.Done():
	}
}
