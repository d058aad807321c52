package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamescout/gamescout/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "catalog:\n  client_id: abc\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "abc", cfg.Catalog.ClientID)
	assert.Equal(t, "https://id.twitch.tv/oauth2/token", cfg.Catalog.TokenURL)
	assert.Equal(t, "https://www.cheapshark.com/api/1.0", cfg.Pricing.BaseURL)
	assert.InDelta(t, 4.0, cfg.Catalog.RateLimit.PerSecond, 0.001)
	assert.Equal(t, 5*time.Minute, cfg.Cache.CleanupInterval)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_CATALOG_ID", "id-from-env")
	t.Setenv("TEST_CATALOG_SECRET", "secret-from-env")

	path := writeConfig(t, `
catalog:
  client_id: ${TEST_CATALOG_ID}
  client_secret: ${TEST_CATALOG_SECRET}
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "id-from-env", cfg.Catalog.ClientID)
	assert.Equal(t, "secret-from-env", cfg.Catalog.ClientSecret)
}

func TestLoad_MissingCredentialsIsNotFatal(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")

	cfg, err := config.Load(path)
	require.NoError(t, err, "absent credentials must not fail config loading")
	assert.Empty(t, cfg.Catalog.ClientID)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 99999\n")

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load("/no/such/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Pricing.CallTimeout)
}
