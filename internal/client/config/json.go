package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/cynit/hub/internal/flagx"
	"github.com/cynit/hub/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations may
// be given either as strings like "30s" or as integer nanoseconds.
type JsonConfig struct {
	SnapshotEndpoint string         `json:"snapshot_endpoint"`
	SnapshotInterval timex.Duration `json:"snapshot_interval"`
	DataDir          string         `json:"data_dir"`
	ModesFile        string         `json:"modes_file"`
	ExportPrefix     string         `json:"export_prefix"`
	DraftDebounce    timex.Duration `json:"draft_debounce"`
	S3RootUser       string         `json:"s3_root_user"`
	S3RootPassword   string         `json:"s3_root_password"`
	S3Bucket         string         `json:"s3_bucket"`
	S3Region         string         `json:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
}

// parseJson overlays cfg with values from the JSON file named by -c/-config.
// Absent file path means no overlay. Read or parse errors panic; config is
// resolved once at startup and a broken file should stop the program.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.SnapshotEndpoint != "" {
		cfg.SnapshotEndpoint = jc.SnapshotEndpoint
	}
	if jc.SnapshotInterval.Duration != 0 {
		cfg.SnapshotInterval = time.Duration(jc.SnapshotInterval.Duration)
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.ModesFile != "" {
		cfg.ModesFile = jc.ModesFile
	}
	if jc.ExportPrefix != "" {
		cfg.ExportPrefix = jc.ExportPrefix
	}
	if jc.DraftDebounce.Duration != 0 {
		cfg.DraftDebounce = time.Duration(jc.DraftDebounce.Duration)
	}
	if jc.S3RootUser != "" {
		cfg.S3RootUser = jc.S3RootUser
	}
	if jc.S3RootPassword != "" {
		cfg.S3RootPassword = jc.S3RootPassword
	}
	if jc.S3Bucket != "" {
		cfg.S3Bucket = jc.S3Bucket
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3BaseEndpoint != "" {
		cfg.S3BaseEndpoint = jc.S3BaseEndpoint
	}
}
