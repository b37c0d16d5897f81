package dbconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	_ "github.com/lib/pq"
)

// Config holds the league database connection settings. It is loaded from the
// "database" section of the server config and overridden by LHSFFL_DB_* variables.
type Config struct {
	// URL is a full postgres:// connection string. When set it wins over the parts below.
	URL string `yaml:"url"`

	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`

	ConnectTimeout  time.Duration `yaml:"connect_timeout"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

var validSSLModes = map[string]bool{
	"disable":     true,
	"allow":       true,
	"prefer":      true,
	"require":     true,
	"verify-ca":   true,
	"verify-full": true,
}

func DefaultConfig() Config {
	return Config{
		Host:            "localhost",
		Port:            5432,
		User:            "postgres",
		Password:        "postgres",
		Database:        "lhsffl",
		SSLMode:         "disable",
		ConnectTimeout:  5 * time.Second,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	}
}

// NewConfigFromEnv is DefaultConfig with environment overrides, for binaries without a config file
func NewConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overrides fields from LHSFFL_DB_* variables. DATABASE_URL is honoured as
// the URL when LHSFFL_DATABASE_URL is unset.
func (c *Config) ApplyEnv() {
	c.URL = getEnv("LHSFFL_DATABASE_URL", getEnv("DATABASE_URL", c.URL))
	c.Host = getEnv("LHSFFL_DB_HOST", c.Host)
	c.Port = getEnvAsInt("LHSFFL_DB_PORT", c.Port)
	c.User = getEnv("LHSFFL_DB_USER", c.User)
	c.Password = getEnv("LHSFFL_DB_PASSWORD", c.Password)
	c.Database = getEnv("LHSFFL_DB_NAME", c.Database)
	c.SSLMode = getEnv("LHSFFL_DB_SSLMODE", c.SSLMode)
	c.ConnectTimeout = getEnvAsDuration("LHSFFL_DB_CONNECT_TIMEOUT", c.ConnectTimeout)
	c.MaxOpenConns = getEnvAsInt("LHSFFL_DB_MAX_OPEN_CONNS", c.MaxOpenConns)
}

func (c Config) Validate() error {
	if c.URL != "" {
		u, err := url.Parse(c.URL)
		if err != nil {
			return fmt.Errorf("invalid database url: %w", err)
		}
		if u.Scheme != "postgres" && u.Scheme != "postgresql" {
			return fmt.Errorf("invalid database url scheme %q", u.Scheme)
		}
		return nil
	}
	if c.Host == "" || c.Database == "" {
		return errors.New("database host and name are required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid database port %d", c.Port)
	}
	if !validSSLModes[c.SSLMode] {
		return fmt.Errorf("invalid sslmode %q", c.SSLMode)
	}
	return nil
}

// DSN returns the connection URL. Credentials are escaped; the connect timeout is
// carried as connect_timeout unless the URL already sets one.
func (c Config) DSN() string {
	if c.URL != "" {
		return c.withConnectTimeout(c.URL)
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Database,
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return c.withConnectTimeout(u.String())
}

func (c Config) withConnectTimeout(dsn string) string {
	if c.ConnectTimeout <= 0 {
		return dsn
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return dsn
	}
	q := u.Query()
	if q.Get("connect_timeout") == "" {
		secs := int(c.ConnectTimeout / time.Second)
		if secs < 1 {
			secs = 1
		}
		q.Set("connect_timeout", strconv.Itoa(secs))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Redacted is the DSN with the password masked, for logs
func (c Config) Redacted() string {
	u, err := url.Parse(c.DSN())
	if err != nil {
		return ""
	}
	return u.Redacted()
}

// Open validates the config, opens a lib/pq pool with the configured limits and pings it
func (c Config) Open(ctx context.Context) (*sql.DB, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	database, err := sql.Open("postgres", c.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}
	if c.MaxOpenConns > 0 {
		database.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		database.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetime > 0 {
		database.SetConnMaxLifetime(c.ConnMaxLifetime)
	}

	if c.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.ConnectTimeout)
		defer cancel()
	}
	if err := database.PingContext(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return database, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
