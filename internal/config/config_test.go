package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validYAML = `
app_id: demo
mysql:
  dsn: "root:pwd@tcp(127.0.0.1:3306)/demo"
jwt:
  access_secret: a
  refresh_secret: r
smtp:
  host: smtp.example.com
  from: noreply@example.com
`

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.AppID)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	assert.Equal(t, "demo_activity", cfg.Kafka.Topic)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("GAMESYNC_ADDR", ":9000")
	t.Setenv("GAMESYNC_REDIS_DB", "3")

	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoadRejectsMissingDSN(t *testing.T) {
	_, err := Load(writeConfig(t, `
app_id: demo
jwt:
  access_secret: a
  refresh_secret: r
smtp:
  host: smtp.example.com
  from: noreply@example.com
`))
	assert.Error(t, err)
}

func TestLoadRejectsBadMode(t *testing.T) {
	_, err := Load(writeConfig(t, validYAML+`
server:
  mode: turbo
`))
	assert.Error(t, err)
}

func TestSanitizeAppID(t *testing.T) {
	assert.Equal(t, "my_app_1", sanitizeAppID("my-app.1"))
}
