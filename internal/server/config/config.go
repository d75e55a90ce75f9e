// Package config handles configuration for the hub server,
// including defaults, JSON overlay, and command-line flags.
package config

// Config holds runtime settings for the hub server.
//
// Fields:
//   - EndpointAddr: host:port the HTTP API listens on.
//   - DataDir: directory for the file-backed document store.
//   - DatabaseDSN: Postgres DSN; empty means the file store is used.
//   - ModesFile: optional modes config; empty means the built-in set.
//   - ExportPrefix: leading part of server-side export archive names.
type Config struct {
	EndpointAddr string
	DataDir      string
	DatabaseDSN  string
	ModesFile    string
	ExportPrefix string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = "127.0.0.1:8080"
	c.DataDir = "hubdata"
	c.ExportPrefix = "i18n_export"
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
