package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/soulbloom/internal/flagx"
	"github.com/dmitrijs2005/soulbloom/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration file. Only
// fields present in the file override the current values; WaterOnCreate is a
// pointer so an explicit false can be told apart from an absent key.
type JsonConfig struct {
	EndpointAddrGRPC string         `json:"endpoint_addr_grpc"`
	MetricsAddr      string         `json:"metrics_addr"`
	DatabaseDSN      string         `json:"database_dsn"`
	SecretKey        string         `json:"secret_key"`
	TokenTTL         timex.Duration `json:"token_ttl"`
	WaterOnCreate    *bool          `json:"water_on_create"`
	BcryptCost       int            `json:"bcrypt_cost"`
	LoginRate        float64        `json:"login_rate"`
	LoginBurst       int            `json:"login_burst"`
	LogLevel         string         `json:"log_level"`
	ServiceName      string         `json:"service_name"`
	Environment      string         `json:"environment"`
}

// parseJson overlays the file named by -c/-config in args onto config.
// Nothing happens when neither flag is given.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	c.apply(config)
	return nil
}

func (c *JsonConfig) apply(config *Config) {
	if c.EndpointAddrGRPC != "" {
		config.EndpointAddrGRPC = c.EndpointAddrGRPC
	}
	if c.MetricsAddr != "" {
		config.MetricsAddr = c.MetricsAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenTTL.Duration != 0 {
		config.TokenTTL = c.TokenTTL.Duration
	}
	if c.WaterOnCreate != nil {
		config.WaterOnCreate = *c.WaterOnCreate
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.LoginRate != 0 {
		config.LoginRate = c.LoginRate
	}
	if c.LoginBurst != 0 {
		config.LoginBurst = c.LoginBurst
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.ServiceName != "" {
		config.ServiceName = c.ServiceName
	}
	if c.Environment != "" {
		config.Environment = c.Environment
	}
}
