package config

import (
	"encoding/json"
	"os"

	"github.com/cynit/hub/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	EndpointAddr string `json:"endpoint_addr"`
	DataDir      string `json:"data_dir"`
	DatabaseDSN  string `json:"database_dsn"`
	ModesFile    string `json:"modes_file"`
	ExportPrefix string `json:"export_prefix"`
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

	if jc.EndpointAddr != "" {
		cfg.EndpointAddr = jc.EndpointAddr
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.ModesFile != "" {
		cfg.ModesFile = jc.ModesFile
	}
	if jc.ExportPrefix != "" {
		cfg.ExportPrefix = jc.ExportPrefix
	}
}
