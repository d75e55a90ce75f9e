// Package config handles configuration for the hub client,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the hub editing client.
//
// Fields:
//   - SnapshotEndpoint: URL of the server's snapshot route.
//   - SnapshotInterval: how often the periodic snapshot timer fires.
//   - DataDir: directory for the autosave slot and local exports.
//   - ModesFile: optional modes config; empty means the built-in set.
//   - ExportPrefix: leading part of export archive names.
//   - DraftDebounce: quiet window before a watched draft write is applied.
//   - S3*: optional publish target for exports (empty bucket disables it).
type Config struct {
	SnapshotEndpoint string
	SnapshotInterval time.Duration
	DataDir          string
	ModesFile        string
	ExportPrefix     string
	DraftDebounce    time.Duration
	S3RootUser       string
	S3RootPassword   string
	S3Bucket         string
	S3Region         string
	S3BaseEndpoint   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.SnapshotEndpoint = "http://127.0.0.1:8080/i18n/snapshot"
	c.SnapshotInterval = 30 * time.Second
	c.DataDir = "hubdata"
	c.ExportPrefix = "i18n_export"
	c.DraftDebounce = 500 * time.Millisecond
	c.S3Region = "us-east-1"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
