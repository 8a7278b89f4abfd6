package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads values from the file", func(t *testing.T) {
		// Given: a config file overriding players and storage
		path := writeConfig(t, `
log-level: debug
log-format: text
http-port: "8080"
players:
  first: Alice
  second: Bob
storage:
  driver: redis
redis:
  host: cache
  port: "6380"
session-ttl: 1h
`)

		// When: the config is loaded
		conf, err := Load(path)

		// Then: the file values are used
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "text", conf.LogFormat)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, Players{First: "Alice", Second: "Bob"}, conf.Players)
		assert.Equal(t, StorageRedis, conf.Storage.Driver)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, time.Hour, conf.SessionTTL)
	})

	t.Run("Falls back to defaults without a file", func(t *testing.T) {
		// When: the config file does not exist
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: defaults apply
		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "json", conf.LogFormat)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, Players{First: "Faizan", Second: "Muaz"}, conf.Players)
		assert.Equal(t, StorageMemory, conf.Storage.Driver)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 24*time.Hour, conf.SessionTTL)
	})

	t.Run("Environment overrides defaults", func(t *testing.T) {
		// Given: player names in the environment
		t.Setenv("PLAYER_FIRST", "Ada")
		t.Setenv("STORAGE_DRIVER", "sqlite")

		// When: the config is loaded without a file
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: the environment wins
		require.NoError(t, err)
		assert.Equal(t, "Ada", conf.Players.First)
		assert.Equal(t, StorageSQLite, conf.Storage.Driver)
	})

	t.Run("Rejects an unknown storage driver", func(t *testing.T) {
		path := writeConfig(t, "storage:\n  driver: etcd\n")

		_, err := Load(path)

		assert.ErrorIs(t, err, ErrUnknownStorageDriver)
	})
}

func TestMustLoad_PanicsOnBadConfig(t *testing.T) {
	path := writeConfig(t, "storage:\n  driver: etcd\n")

	assert.Panics(t, func() {
		MustLoad(path)
	})
}
