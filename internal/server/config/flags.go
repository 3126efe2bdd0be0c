package config

import (
	"flag"
	"os"
	"time"

	"github.com/dkowalski/quoteshelf/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-r string   redis address (host:port)
//	-s string   JWT HMAC secret key
//	-t int      token lifetime, minutes
//	-l int      registration attempts allowed per window
//	-w int      registration window, minutes
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags are accepted as integer minutes and converted to time.Duration.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-r", "-s", "-t", "-l", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenLifetime := fs.Int("t", int(config.TokenLifetime.Minutes()), "token lifetime (in minutes)")
	fs.Int64Var(&config.RegisterLimit, "l", config.RegisterLimit, "registration attempts per window")
	registerWindow := fs.Int("w", int(config.RegisterWindow.Minutes()), "registration window (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenLifetime = time.Duration(*tokenLifetime) * time.Minute
	config.RegisterWindow = time.Duration(*registerWindow) * time.Minute
}
