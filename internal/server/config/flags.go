package config

import (
	"flag"
	"os"

	"github.com/cynit/hub/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   listen address (default from Config)
//	-d string   data directory
//	-p string   postgres DSN
//	-m string   modes config file
//
// Only the flags listed here are parsed, via flagx.FilterArgs, so other
// components' flags pass through untouched.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-p", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointAddr, "a", cfg.EndpointAddr, "listen address")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.DatabaseDSN, "p", cfg.DatabaseDSN, "postgres DSN")
	fs.StringVar(&cfg.ModesFile, "m", cfg.ModesFile, "modes config file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
