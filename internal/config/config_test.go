package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
app:
  environment: test
storage:
  path: data/buildmart.db
api:
  enabled: true
`))
	require.NoError(t, err)

	assert.Equal(t, "buildmart", cfg.App.Name)
	assert.Equal(t, 8080, cfg.API.HTTP.Port)
	assert.True(t, cfg.API.HTTP.Enabled)
	assert.Equal(t, "x-api-key", cfg.API.Auth.HeaderAPIKey)
	assert.Equal(t, 10.0, cfg.API.RateLimit.RPS)
	assert.Equal(t, 0.08, cfg.Checkout.TaxRate)
	assert.Equal(t, "buildmart", cfg.Storage.Redis.KeyPrefix)
	assert.Equal(t, "configs/seed.yaml", cfg.Seed.Path)
	assert.Equal(t, 5, cfg.Worker.MaxRetries)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("BUILDMART_DB_PATH", "/tmp/custom.db")

	cfg, err := Load(writeConfig(t, `
storage:
  path: ${BUILDMART_DB_PATH}
`))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", cfg.Storage.Path)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Run("RequiresStoragePath", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
app:
  name: buildmart
`))
		assert.ErrorContains(t, err, "storage path")
	})

	t.Run("RedisNeedsAddress", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
storage:
  path: data/buildmart.db
  redis:
    enabled: true
`))
		assert.ErrorContains(t, err, "redis.address")
	})

	t.Run("TaxRateRange", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
storage:
  path: data/buildmart.db
checkout:
  tax_rate: 1.5
`))
		assert.ErrorContains(t, err, "tax_rate")
	})

	t.Run("GoogleNeedsCredentials", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
storage:
  path: data/buildmart.db
google:
  enabled: true
`))
		assert.ErrorContains(t, err, "credentials_file")
	})

	t.Run("TelegramNeedsToken", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
storage:
  path: data/buildmart.db
telegram:
  enabled: true
`))
		assert.ErrorContains(t, err, "bot_token")
	})
}

func TestCustomValuesSurviveDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
storage:
  path: data/buildmart.db
checkout:
  tax_rate: 0.18
api:
  http:
    port: 9000
worker:
  queue_name: "custom:queue"
`))
	require.NoError(t, err)

	assert.Equal(t, 0.18, cfg.Checkout.TaxRate)
	assert.Equal(t, 9000, cfg.API.HTTP.Port)
	assert.Equal(t, "custom:queue", cfg.Worker.QueueName)
}
