package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/cynit/hub/internal/logging"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu   sync.Mutex
	seen []string
}

func (c *collector) add(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seen = append(c.seen, s)
}

func (c *collector) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.seen))
	copy(out, c.seen)
	return out
}

func TestWatcherEmitsFinalContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draft.md")
	require.NoError(t, os.WriteFile(path, []byte("initial"), 0o600))

	c := &collector{}
	w, err := New(path, 50*time.Millisecond, c.add, logging.NewNopLogger())
	require.NoError(t, err)
	defer w.Close()

	// A quick burst of writes should collapse into one event.
	require.NoError(t, os.WriteFile(path, []byte("draft one"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte("draft two"), 0o600))

	require.Eventually(t, func() bool {
		got := c.snapshot()
		return len(got) >= 1 && got[len(got)-1] == "draft two"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draft.md")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	c := &collector{}
	w, err := New(path, 20*time.Millisecond, c.add, logging.NewNopLogger())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.md"), []byte("y"), 0o600))

	time.Sleep(100 * time.Millisecond)
	require.Empty(t, c.snapshot())
}

func TestWatcherClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draft.md")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	w, err := New(path, 10*time.Millisecond, func(string) {}, logging.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, w.Close())
}
