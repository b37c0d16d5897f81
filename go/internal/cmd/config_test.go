package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/lhsffl/go/clients"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", config.Server.Port)
	assert.Equal(t, clients.DataSourceLeagueAPI, config.TradeTree.Source)
	assert.Equal(t, 30*time.Second, config.TradeTree.CacheTTL)
	assert.False(t, config.Gateway.EventsEnabled)
	assert.False(t, config.Telemetry.Enabled)
	assert.Equal(t, "lhsffl", config.Database.Database)
	assert.Equal(t, "disable", config.Database.SSLMode)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
server:
  port: "9090"
trade_tree:
  source: postgres
  cache_ttl: 1m
  fetch_concurrency: 8
database:
  host: league-db
  name: league
  sslmode: require
gateway:
  events_enabled: true
telemetry:
  enabled: true
  service_name: trade-tree-test
`)
	t.Setenv("PORT", "7070")
	t.Setenv("LEAGUE_API_CACHE_TTL", "5s")
	t.Setenv("FETCH_CONCURRENCY", "not-a-number")
	t.Setenv("LHSFFL_DB_PORT", "6432")

	config, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, "7070", config.Server.Port)
	assert.Equal(t, clients.DataSourcePostgres, config.TradeTree.Source)
	assert.Equal(t, 5*time.Second, config.TradeTree.CacheTTL)
	assert.Equal(t, 8, config.TradeTree.FetchConcurrency)
	assert.True(t, config.Gateway.EventsEnabled)
	assert.True(t, config.Telemetry.Enabled)
	assert.Equal(t, "trade-tree-test", config.Telemetry.ServiceName)
	assert.Equal(t, "league-db", config.Database.Host)
	assert.Equal(t, 6432, config.Database.Port)
	assert.Contains(t, config.Database.DSN(), "sslmode=require")
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := loadConfig(writeConfig(t, "trade_tree:\n  source: spreadsheet\n"))
	assert.ErrorContains(t, err, "unknown trade tree source")

	_, err = loadConfig(writeConfig(t, "trade_tree:\n  source: postgres\ndatabase:\n  sslmode: sometimes\n"))
	assert.ErrorContains(t, err, "invalid database config")

	_, err = loadConfig(writeConfig(t, "server: [\n"))
	assert.ErrorContains(t, err, "failed to parse config")
}
