package autosave

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cynit/hub/internal/modes"
	"github.com/stretchr/testify/require"
)

func TestSaveOverwrites(t *testing.T) {
	s := NewStore(t.TempDir())

	require.NoError(t, s.Save(Record{Mode: modes.Markdown, Content: "first", Timestamp: time.Now()}))
	require.NoError(t, s.Save(Record{Mode: modes.CSS, Content: "second", Timestamp: time.Now()}))

	rec, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, modes.CSS, rec.Mode)
	require.Equal(t, "second", rec.Content)
}

func TestLoadMissingSlot(t *testing.T) {
	s := NewStore(t.TempDir())

	rec, err := s.Load()
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestLoadCorruptSlot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SlotFilename), []byte("{broken"), 0o600))

	_, err := NewStore(dir).Load()
	require.Error(t, err)
}

func TestRoundTripTimestamp(t *testing.T) {
	s := NewStore(t.TempDir())
	ts := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.Save(Record{Mode: modes.HTML, Content: "<p>x</p>", Timestamp: ts}))

	rec, err := s.Load()
	require.NoError(t, err)
	require.True(t, rec.Timestamp.Equal(ts))
}
