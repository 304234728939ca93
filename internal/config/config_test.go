package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad(t *testing.T) {
	t.Run("Reads the yml file", func(t *testing.T) {
		// Given: a config file enabling stats
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte(`
log-level: debug
socket-port: "4000"
redis:
  host: redis
stats:
  enabled: true
  queue-size: 8
`), 0o600))

		// When: it is loaded
		conf := MustLoad(path)

		// Then: file values win and the rest keeps its defaults
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "4000", conf.SocketPort)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.True(t, conf.Stats.Enabled)
		assert.Equal(t, 8, conf.Stats.QueueSize)
		assert.Equal(t, int64(100), conf.Stats.RecentResults)
		assert.Equal(t, "redis:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Falls back to the environment without a file", func(t *testing.T) {
		// Given: no config file and a port in the environment
		t.Setenv("SERVER_PORT", "3333")

		// When: a missing file is loaded
		conf := MustLoad(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: the environment and defaults are used
		assert.Equal(t, "3333", conf.SocketPort)
		assert.Equal(t, "info", conf.LogLevel)
		assert.False(t, conf.Stats.Enabled)
	})

	t.Run("Panics on a broken file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("stats: [not, a, map"), 0o600))

		assert.Panics(t, func() { MustLoad(path) })
	})
}
