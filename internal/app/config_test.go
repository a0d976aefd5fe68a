package app

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
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, "server:\n  http-port: :8080\n")

	cfg, realpath, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, realpath)

	// 显式配置的值
	assert.Equal(t, ":8080", cfg.Server.HttpPort)

	// 未配置的字段落回默认值
	assert.Equal(t, "release", cfg.Server.RunMode)
	assert.Equal(t, ":9001", cfg.Server.PrivateHttpListen)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, "0 4 * * *", cfg.App.MaintenanceSchedule)
	assert.True(t, cfg.Tracer.Enabled)
	assert.Equal(t, "X-Trace-ID", cfg.Tracer.Header)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidYaml(t *testing.T) {
	path := writeConfigFile(t, "server: [broken\n")
	_, _, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConnMaxDurations(t *testing.T) {
	path := writeConfigFile(t, "database:\n  conn-max-lifetime: 1h\n  conn-max-idle-time: bad\n")

	cfg, _, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.GetConnMaxLifetime())
	// 非法值落回默认
	assert.Equal(t, 10*time.Minute, cfg.GetConnMaxIdleTime())
}

func TestConfigSaveRoundTrip(t *testing.T) {
	path := writeConfigFile(t, "server:\n  http-port: :7000\n")

	cfg, _, err := LoadConfig(path)
	require.NoError(t, err)

	cfg.Server.RunMode = "debug"
	require.NoError(t, cfg.Save())

	again, _, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", again.Server.RunMode)
	assert.Equal(t, ":7000", again.Server.HttpPort)
}
