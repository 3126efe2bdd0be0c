package config

import (
	"flag"
	"os"

	"github.com/dkowalski/quoteshelf/internal/flagx"
)

// parseFlags populates selected client Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend API
//	-f string   local sqlite database path
//
// os.Args is filtered to only the recognized flags via flagx.FilterArgs so
// unrelated flags do not break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerURL, "a", config.ServerURL, "server base URL")
	fs.StringVar(&config.DatabasePath, "f", config.DatabasePath, "local database path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
