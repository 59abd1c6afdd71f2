package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func startWatcher(t *testing.T, dirs []string) (<-chan string, context.CancelFunc, <-chan error) {
	t.Helper()
	w, err := New(dirs, WithDebounce(100*time.Millisecond), WithLimiter(rate.NewLimiter(rate.Inf, 1)))
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })

	changes := make(chan string, 16)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(path string) { changes <- path })
	}()
	t.Cleanup(cancel)
	return changes, cancel, done
}

func TestRun_ReportsJSONChange(t *testing.T) {
	dir := t.TempDir()
	changes, _, _ := startWatcher(t, []string{dir})

	path := filepath.Join(dir, "home.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"label": "Home"}`), 0644))

	select {
	case got := <-changes:
		assert.Equal(t, path, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestRun_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	changes, _, _ := startWatcher(t, []string{dir})

	path := filepath.Join(dir, "home.json")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{"label": "Home"}`), 0644))
	}

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case extra := <-changes:
		t.Fatalf("burst produced a second callback for %s", extra)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestRun_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	changes, _, _ := startWatcher(t, []string{dir})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	select {
	case got := <-changes:
		t.Fatalf("unexpected change for %s", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	_, cancel, done := startWatcher(t, []string{t.TempDir()})

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNew_DeduplicatesDirs(t *testing.T) {
	dir := t.TempDir()
	w, err := New([]string{dir, dir + string(filepath.Separator), dir})
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, []string{filepath.Clean(dir)}, w.Dirs())
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)
}

func TestRelevant(t *testing.T) {
	tests := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: "/p/home.json", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/p/home.JSON", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/p/home.json", Op: fsnotify.Remove}, true},
		{fsnotify.Event{Name: "/p/home.json", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/p/home.json.swp", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "/p/readme.md", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.event.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, relevant(tt.event))
		})
	}
}
