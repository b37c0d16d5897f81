package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mcdev12/lhsffl/go/clients"
	"github.com/mcdev12/lhsffl/go/internal/dbconfig"
	"github.com/mcdev12/lhsffl/go/internal/telemetry"
)

type Config struct {
	LogLevel string `yaml:"log_level"`

	Server struct {
		Port            string        `yaml:"port"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	TradeTree struct {
		Source           clients.DataSource `yaml:"source"`
		LeagueAPIURL     string             `yaml:"league_api_url"`
		RequestTimeout   time.Duration      `yaml:"request_timeout"`
		CacheTTL         time.Duration      `yaml:"cache_ttl"`
		FetchConcurrency int                `yaml:"fetch_concurrency"`
	} `yaml:"trade_tree"`

	Database dbconfig.Config `yaml:"database"`

	Gateway struct {
		EventsEnabled bool          `yaml:"events_enabled"`
		NatsURL       string        `yaml:"nats_url"`
		LoadTimeout   time.Duration `yaml:"load_timeout"`
	} `yaml:"gateway"`

	Telemetry telemetry.Config `yaml:"telemetry"`
}

func defaultConfig() *Config {
	var config Config
	config.LogLevel = "info"
	config.Server.Port = "8080"
	config.Server.ShutdownTimeout = 10 * time.Second
	config.TradeTree.Source = clients.DefaultDataSource()
	config.TradeTree.RequestTimeout = 30 * time.Second
	config.TradeTree.CacheTTL = 30 * time.Second
	config.TradeTree.FetchConcurrency = 4
	config.Database = dbconfig.DefaultConfig()
	config.Gateway.NatsURL = "nats://localhost:4222"
	config.Gateway.LoadTimeout = 30 * time.Second
	config.Telemetry.ServiceName = "lhsffl-trade-tree"
	return &config
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// loadConfig reads the YAML file at path over the defaults, then applies environment
// overrides. A missing file is not an error.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	config.applyEnv()

	if !clients.ValidateDataSource(config.TradeTree.Source) {
		return nil, fmt.Errorf("unknown trade tree source %q", config.TradeTree.Source)
	}
	if config.TradeTree.Source == clients.DataSourcePostgres {
		if err := config.Database.Validate(); err != nil {
			return nil, fmt.Errorf("invalid database config: %w", err)
		}
	}
	return config, nil
}

func (c *Config) applyEnv() {
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.ShutdownTimeout = getEnvAsDuration("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.TradeTree.Source = clients.DataSource(getEnv("TRADE_TREE_SOURCE", string(c.TradeTree.Source)))
	c.TradeTree.LeagueAPIURL = getEnv("LEAGUE_API_URL", c.TradeTree.LeagueAPIURL)
	c.TradeTree.RequestTimeout = getEnvAsDuration("LEAGUE_API_TIMEOUT", c.TradeTree.RequestTimeout)
	c.TradeTree.CacheTTL = getEnvAsDuration("LEAGUE_API_CACHE_TTL", c.TradeTree.CacheTTL)
	c.TradeTree.FetchConcurrency = getEnvAsInt("FETCH_CONCURRENCY", c.TradeTree.FetchConcurrency)

	c.Database.ApplyEnv()

	c.Gateway.EventsEnabled = getEnvAsBool("GATEWAY_EVENTS_ENABLED", c.Gateway.EventsEnabled)
	c.Gateway.NatsURL = getEnv("NATS_URL", c.Gateway.NatsURL)
	c.Gateway.LoadTimeout = getEnvAsDuration("GATEWAY_LOAD_TIMEOUT", c.Gateway.LoadTimeout)

	c.Telemetry.Enabled = getEnvAsBool("TRACING_ENABLED", c.Telemetry.Enabled)
}
