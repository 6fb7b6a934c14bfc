package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadWatcherConfig(t *testing.T) {
	t.Run("loads from environment with defaults", func(t *testing.T) {
		t.Setenv("PREMINTPOOL_ETHEREUM_WEBSOCKET_URL", "wss://rpc.zora.energy")
		t.Setenv("PREMINTPOOL_DATABASE_HOST", "localhost")
		t.Setenv("PREMINTPOOL_DATABASE_USER", "premintpool")
		t.Setenv("PREMINTPOOL_NATS_URL", "nats://localhost:4222")

		cfg, err := LoadWatcherConfig("", t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "wss://rpc.zora.energy", cfg.Ethereum.WebSocketURL)
		assert.Equal(t, uint64(7777777), cfg.Ethereum.ChainID)
		assert.Equal(t, uint64(0), cfg.Ethereum.StartBlock)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
		assert.Equal(t, "PREMINT_EVENTS", cfg.NATS.StreamName)
		assert.Equal(t, 10, cfg.NATS.MaxReconnects)
		assert.Equal(t, 2*time.Second, cfg.NATS.ReconnectWait)
		assert.Equal(t, 10, cfg.Worker.PoolSize)
		assert.Equal(t, 1024, cfg.Worker.QueueSize)
		assert.Equal(t, InclusionModeVerify, cfg.InclusionMode)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("PREMINTPOOL_ETHEREUM_WEBSOCKET_URL", "wss://rpc.zora.energy")
		t.Setenv("PREMINTPOOL_ETHEREUM_CHAIN_ID", "8453")
		t.Setenv("PREMINTPOOL_ETHEREUM_START_BLOCK", "123456")
		t.Setenv("PREMINTPOOL_INCLUSION_MODE", "trust")
		t.Setenv("PREMINTPOOL_WORKER_POOL_SIZE", "4")

		cfg, err := LoadWatcherConfig("", t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, uint64(8453), cfg.Ethereum.ChainID)
		assert.Equal(t, uint64(123456), cfg.Ethereum.StartBlock)
		assert.Equal(t, InclusionModeTrust, cfg.InclusionMode)
		assert.Equal(t, 4, cfg.Worker.PoolSize)
	})

	t.Run("loads from a config file", func(t *testing.T) {
		path := writeConfigFile(t, `
debug: true
database:
  host: db.internal
  user: premintpool
  dbname: premintpool
ethereum:
  websocket_url: wss://rpc.zora.energy
  chain_id: 7777777
  start_block: 5000000
nats:
  url: nats://nats.internal:4222
inclusion_mode: verify
`)

		cfg, err := LoadWatcherConfig(path, t.TempDir())
		require.NoError(t, err)

		assert.True(t, cfg.Debug)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, uint64(5000000), cfg.Ethereum.StartBlock)
		assert.Equal(t, "nats://nats.internal:4222", cfg.NATS.URL)
		assert.Equal(t, InclusionModeVerify, cfg.InclusionMode)
	})

	t.Run("rejects a missing websocket url", func(t *testing.T) {
		_, err := LoadWatcherConfig("", t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "websocket_url")
	})

	t.Run("rejects an invalid inclusion mode", func(t *testing.T) {
		t.Setenv("PREMINTPOOL_ETHEREUM_WEBSOCKET_URL", "wss://rpc.zora.energy")
		t.Setenv("PREMINTPOOL_INCLUSION_MODE", "maybe")

		_, err := LoadWatcherConfig("", t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "inclusion_mode")
	})
}

func TestLoadAPIConfig(t *testing.T) {
	t.Run("loads defaults", func(t *testing.T) {
		cfg, err := LoadAPIConfig("", t.TempDir())
		require.NoError(t, err)

		assert.False(t, cfg.Debug)
		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 10, cfg.Server.ReadTimeout)
		assert.Equal(t, 10, cfg.Server.WriteTimeout)
		assert.Equal(t, 120, cfg.Server.IdleTimeout)
		assert.Equal(t, "PREMINT_EVENTS", cfg.NATS.StreamName)
	})

	t.Run("loads from a config file", func(t *testing.T) {
		path := writeConfigFile(t, `
server:
  port: 9090
database:
  host: db.internal
  user: premintpool
  password: secret
  dbname: premintpool
auth:
  api_keys:
    - key-one
    - key-two
`)

		cfg, err := LoadAPIConfig(path, t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, []string{"key-one", "key-two"}, cfg.Auth.APIKeys)
	})

	t.Run("environment overrides the config file", func(t *testing.T) {
		t.Setenv("PREMINTPOOL_SERVER_PORT", "7070")

		path := writeConfigFile(t, `
server:
  port: 9090
`)

		cfg, err := LoadAPIConfig(path, t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, 7070, cfg.Server.Port)
	})
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "premintpool",
		Password: "secret",
		DBName:   "premintpool",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=premintpool password=secret dbname=premintpool sslmode=disable",
		cfg.DSN())
}
