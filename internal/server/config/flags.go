package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/soulbloom/internal/flagx"
)

// serverFlags lists the short flags parseFlags understands. Everything else in
// the command line (including -c/-config) is filtered out before parsing.
var serverFlags = []string{"-a", "-m", "-d", "-s", "-t", "-w", "-k", "-r", "-b", "-l"}

// parseFlags populates config from command-line flags:
//
//	-a string    gRPC bind address (e.g. ":50051")
//	-m string    metrics/health HTTP bind address, empty disables it
//	-d string    PostgreSQL DSN
//	-s string    token signing secret
//	-t duration  token TTL (e.g. "24h")
//	-w bool      water gardens on creation
//	-k int       bcrypt cost
//	-r float     login attempts per second allowed per email
//	-b int       login attempt burst per email
//	-l string    log level (debug, info, warn, error)
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, serverFlags)

	fs := flag.NewFlagSet("soulbloom", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.MetricsAddr, "m", config.MetricsAddr, "address of metrics and health endpoint")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	fs.DurationVar(&config.TokenTTL, "t", config.TokenTTL, "token ttl")
	fs.BoolVar(&config.WaterOnCreate, "w", config.WaterOnCreate, "water gardens on creation")
	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	fs.Float64Var(&config.LoginRate, "r", config.LoginRate, "login attempts per second per email")
	fs.IntVar(&config.LoginBurst, "b", config.LoginBurst, "login attempt burst per email")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
