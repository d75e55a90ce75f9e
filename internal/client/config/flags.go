package config

import (
	"flag"
	"os"
	"time"

	"github.com/cynit/hub/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-e string   snapshot endpoint URL (default from Config)
//	-i int      snapshot interval in seconds (default from Config)
//	-d string   data directory
//	-m string   modes config file
//
// Only the flags listed here are parsed, via flagx.FilterArgs, so other
// components' flags pass through untouched.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-e", "-i", "-d", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.SnapshotEndpoint, "e", cfg.SnapshotEndpoint, "snapshot endpoint URL")
	snapshotInterval := fs.Int("i", int(cfg.SnapshotInterval.Seconds()), "snapshot interval (in seconds)")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.ModesFile, "m", cfg.ModesFile, "modes config file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SnapshotInterval = time.Duration(*snapshotInterval) * time.Second
}
