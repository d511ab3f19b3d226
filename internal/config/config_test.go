package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		// Given: a config file that only sets the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: loading it
		conf, err := Load(path)

		// Then: every other value falls back to its default
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, 16, conf.Game.Target1)
		assert.Equal(t, 14, conf.Game.Target2)
		assert.Equal(t, BackendMemory, conf.Sync.Backend)
		assert.Equal(t, 24*time.Hour, conf.Sync.RoomTTL)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Values from file", func(t *testing.T) {
		path := writeConfig(t, `
game:
  target1: 15
  target2: 13
sync:
  backend: firebase
  room-ttl: 1h
firebase:
  credentials-path: /etc/tictactotal/creds.json
  database-url: https://example.firebaseio.com
`)

		conf, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, 15, conf.Game.Target1)
		assert.Equal(t, 13, conf.Game.Target2)
		assert.Equal(t, BackendFirebase, conf.Sync.Backend)
		assert.Equal(t, time.Hour, conf.Sync.RoomTTL)
		assert.Equal(t, "https://example.firebaseio.com", conf.Firebase.DatabaseURL)
	})

	t.Run("Unknown backend", func(t *testing.T) {
		path := writeConfig(t, "sync:\n  backend: postgres\n")

		_, err := Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown sync backend")
	})

	t.Run("Non-positive target", func(t *testing.T) {
		path := writeConfig(t, "game:\n  target1: -1\n")

		_, err := Load(path)

		require.Error(t, err)
	})

	t.Run("Missing file panics in MustLoad", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}
