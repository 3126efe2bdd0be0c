package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddr)
	assert.Equal(t, 1*time.Hour, c.TokenLifetime)
	assert.Equal(t, int64(2), c.RegisterLimit)
	assert.Equal(t, 1*time.Hour, c.RegisterWindow)
}

func Test_parseJson_OverlaysFileValues(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.json")
	b, err := json.Marshal(map[string]any{
		"endpoint_addr":   ":9999",
		"database_dsn":    "postgres://u:p@db:5432/app",
		"redis_addr":      "redis:6379",
		"secret_key":      "another",
		"token_lifetime":  "30m",
		"register_limit":  5,
		"register_window": "2h",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))

	os.Args = []string{"testbin", "-config", path}

	cfg := &Config{}
	parseJson(cfg)

	assert.Equal(t, ":9999", cfg.EndpointAddr)
	assert.Equal(t, "postgres://u:p@db:5432/app", cfg.DatabaseDSN)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, "another", cfg.SecretKey)
	assert.Equal(t, 30*time.Minute, cfg.TokenLifetime)
	assert.Equal(t, int64(5), cfg.RegisterLimit)
	assert.Equal(t, 2*time.Hour, cfg.RegisterWindow)
}

func Test_parseJson_NoFlagNoChanges(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin"}

	cfg := &Config{EndpointAddr: ":1234", TokenLifetime: 5 * time.Minute}
	parseJson(cfg)

	assert.Equal(t, ":1234", cfg.EndpointAddr)
	assert.Equal(t, 5*time.Minute, cfg.TokenLifetime)
}
