package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names understood by parseEnv.
const (
	envGRPCAddr      = "SOULBLOOM_GRPC_ADDR"
	envMetricsAddr   = "SOULBLOOM_METRICS_ADDR"
	envDatabaseDSN   = "SOULBLOOM_DATABASE_DSN"
	envSecretKey     = "SOULBLOOM_SECRET_KEY"
	envTokenTTL      = "SOULBLOOM_TOKEN_TTL"
	envWaterOnCreate = "SOULBLOOM_WATER_ON_CREATE"
	envBcryptCost    = "SOULBLOOM_BCRYPT_COST"
	envLoginRate     = "SOULBLOOM_LOGIN_RATE"
	envLoginBurst    = "SOULBLOOM_LOGIN_BURST"
	envLogLevel      = "SOULBLOOM_LOG_LEVEL"
	envServiceName   = "SOULBLOOM_SERVICE_NAME"
	envEnvironment   = "SOULBLOOM_ENV"
)

// parseEnv loads dotenvFile into the process environment when it exists
// (variables already set win) and copies every SOULBLOOM_* variable present
// into config.
func parseEnv(config *Config, dotenvFile string) error {
	if dotenvFile != "" {
		if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", dotenvFile, err)
		}
	}
	return applyEnv(config, os.LookupEnv)
}

func applyEnv(config *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str(envGRPCAddr, &config.EndpointAddrGRPC)
	str(envMetricsAddr, &config.MetricsAddr)
	str(envDatabaseDSN, &config.DatabaseDSN)
	str(envSecretKey, &config.SecretKey)
	str(envLogLevel, &config.LogLevel)
	str(envServiceName, &config.ServiceName)
	str(envEnvironment, &config.Environment)

	if v, ok := lookup(envTokenTTL); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envTokenTTL, err)
		}
		config.TokenTTL = d
	}
	if v, ok := lookup(envWaterOnCreate); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envWaterOnCreate, err)
		}
		config.WaterOnCreate = b
	}
	if v, ok := lookup(envBcryptCost); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envBcryptCost, err)
		}
		config.BcryptCost = n
	}
	if v, ok := lookup(envLoginRate); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", envLoginRate, err)
		}
		config.LoginRate = f
	}
	if v, ok := lookup(envLoginBurst); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envLoginBurst, err)
		}
		config.LoginBurst = n
	}
	return nil
}
