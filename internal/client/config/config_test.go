package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"hub"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	require.Equal(t, "http://127.0.0.1:8080/i18n/snapshot", c.SnapshotEndpoint)
	require.Equal(t, 30*time.Second, c.SnapshotInterval)
	require.Equal(t, "hubdata", c.DataDir)
	require.Equal(t, "i18n_export", c.ExportPrefix)
	require.Empty(t, c.S3Bucket, "publishing is off by default")
}

func TestLoadConfigJsonOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"snapshot_endpoint": "http://hub.internal/i18n/snapshot",
		"snapshot_interval": "90s",
		"data_dir": "/var/lib/hub",
		"s3_bucket": "hub-exports"
	}`), 0o600))

	withArgs(t, "-c", path)

	cfg := LoadConfig()
	require.Equal(t, "http://hub.internal/i18n/snapshot", cfg.SnapshotEndpoint)
	require.Equal(t, 90*time.Second, cfg.SnapshotInterval)
	require.Equal(t, "/var/lib/hub", cfg.DataDir)
	require.Equal(t, "hub-exports", cfg.S3Bucket)
	// Untouched fields keep their defaults.
	require.Equal(t, "i18n_export", cfg.ExportPrefix)
}

func TestLoadConfigFlagsWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"snapshot_interval": "90s"}`), 0o600))

	withArgs(t, "-c", path, "-i", "10", "-e", "http://flag.example/snap")

	cfg := LoadConfig()
	require.Equal(t, 10*time.Second, cfg.SnapshotInterval)
	require.Equal(t, "http://flag.example/snap", cfg.SnapshotEndpoint)
}

func TestParseJsonMissingFilePanics(t *testing.T) {
	withArgs(t, "-c", filepath.Join(t.TempDir(), "nope.json"))

	require.Panics(t, func() { LoadConfig() })
}
