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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "TELEGRAM_BOT_TOKEN", "TELEGRAM_BOT_USERNAME", "DATABASE_URL", "APP_TELEGRAM_TOKEN", "APP_APP_ENV"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "prod", c.App.Env)
	assert.Equal(t, "Telegisto_bot", c.Telegram.Username)
	assert.Equal(t, 60, c.Telegram.PollTimeout)
	assert.Equal(t, 25.0, c.Telegram.RatePerSecond)
	assert.Equal(t, ":3001", c.HTTP.Addr)
	assert.True(t, c.Metrics.Enabled)
	assert.Equal(t, 5*time.Second, c.Queue.SettleDelay)
	assert.Equal(t, time.Second, c.Queue.TimeUnit)
	assert.ErrorIs(t, c.Validate(), ErrNoToken)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
app:
  env: dev
telegram:
  token: "123:abc"
  username: MyBot
  poll_timeout: 30
http:
  addr: ":9000"
postgres:
  dsn: "postgres://u:p@localhost:5432/telegisto"
metrics:
  enabled: false
queue:
  settle_delay: 2s
  time_unit: 250ms
  seed: 7
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", c.App.Env)
	assert.Equal(t, "123:abc", c.Telegram.Token)
	assert.Equal(t, "MyBot", c.Telegram.Username)
	assert.Equal(t, 30, c.Telegram.PollTimeout)
	assert.Equal(t, ":9000", c.HTTP.Addr)
	assert.False(t, c.Metrics.Enabled)
	assert.Equal(t, 2*time.Second, c.Queue.SettleDelay)
	assert.Equal(t, 250*time.Millisecond, c.Queue.TimeUnit)
	assert.Equal(t, uint64(7), c.Queue.Seed)
	assert.NoError(t, c.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "from-file"
postgres:
  dsn: "postgres://file"
`)
	t.Setenv("TELEGRAM_BOT_TOKEN", "from-env")
	t.Setenv("TELEGRAM_BOT_USERNAME", "EnvBot")
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("PORT", "8080")
	t.Setenv("APP_APP_ENV", "dev")

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", c.Telegram.Token)
	assert.Equal(t, "EnvBot", c.Telegram.Username)
	assert.Equal(t, "postgres://env", c.Postgres.DSN)
	assert.Equal(t, ":8080", c.HTTP.Addr)
	assert.Equal(t, "dev", c.App.Env)
}

func TestValidate(t *testing.T) {
	var c Config
	c.Telegram.Token = "t"
	assert.ErrorIs(t, c.Validate(), ErrNoDSN)
}
