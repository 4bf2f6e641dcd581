package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadConfig(t *testing.T) {
	t.Run("should fill defaults", func(t *testing.T) {
		cfg, err := loadConfig(env(nil))

		require.NoError(t, err)
		assert.Equal(t, "8000", cfg.HTTPPort)
		assert.Equal(t, 60*time.Minute, cfg.AccessTokenTTL)
		assert.Equal(t, 10*time.Second, cfg.ExternalCallTimeout)
		assert.Equal(t, "Brazil", cfg.GeocodeCountry)
		assert.False(t, cfg.RedisEnabled())
		assert.ErrorIs(t, cfg.Validate(), ErrJWTSecretIsRequired)
	})

	t.Run("should let the environment override the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
http_port: "9000"
db_host: db.internal
jwt_secret: from-file
access_token_ttl: 30m
cors_allowed_origins:
  - https://a.example
redis_db: 2
`), 0o600))

		cfg, err := loadConfig(env(map[string]string{
			"CONFIG_FILE":          path,
			"JWT_SECRET":           "from-env",
			"CORS_ALLOWED_ORIGINS": "https://b.example, https://c.example",
			"CACHE_TTL":            "2h",
		}))

		require.NoError(t, err)
		assert.Equal(t, "9000", cfg.HTTPPort)
		assert.Equal(t, "db.internal", cfg.DBHost)
		assert.Equal(t, "from-env", cfg.JWTSecret)
		assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
		assert.Equal(t, 2*time.Hour, cfg.CacheTTL)
		assert.Equal(t, 2, cfg.RedisDB)
		assert.Equal(t, []string{"https://b.example", "https://c.example"}, cfg.CORSAllowedOrigins)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("should reject malformed values", func(t *testing.T) {
		_, err := loadConfig(env(map[string]string{"ACCESS_TOKEN_TTL": "soon"}))
		require.ErrorContains(t, err, "ACCESS_TOKEN_TTL")

		_, err = loadConfig(env(map[string]string{"REDIS_DB": "first"}))
		require.ErrorContains(t, err, "REDIS_DB")

		_, err = loadConfig(env(map[string]string{"CONFIG_FILE": filepath.Join(t.TempDir(), "missing.yaml")}))
		require.Error(t, err)
	})

	t.Run("should build the dsn and log level", func(t *testing.T) {
		cfg, err := loadConfig(env(map[string]string{"DB_PASSWORD": "pw", "LOG_LEVEL": "debug"}))

		require.NoError(t, err)
		assert.Equal(t, "host='localhost' port='5432' user='postgres' password='pw' dbname='delivery_tracker' sslmode='disable'", cfg.DSN())
		assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	})
}
