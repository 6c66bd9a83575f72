package app

import (
	"bytes"
	"log/slog"
	"os"
	"testing"

	"github.com/kelseyhightower/envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mos234/vegetable-orders/internal/blob"
	"github.com/mos234/vegetable-orders/internal/orders"
	"github.com/mos234/vegetable-orders/internal/storage"
)

func defaultConfig(t *testing.T) Config {
	t.Helper()
	var cfg Config
	require.NoError(t, envconfig.Process("", &cfg))
	return cfg
}

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "APP_ADDR", "STORE_DRIVER", "BLOB_DRIVER", "ORDER_NUMBERING", "APP_LOCALE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.AppAddr)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, "fs", cfg.BlobDriver)
	assert.Equal(t, orders.NumberingLast, cfg.Numbering())
	assert.Equal(t, "he", cfg.Locale)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("REDIS_ADDR", "10.0.0.5:6379")
	t.Setenv("ORDER_NUMBERING", "sequence")
	t.Setenv("BLOB_DRIVER", "s3")
	t.Setenv("BLOB_S3_BUCKET", "veg")
	t.Setenv("BLOB_S3_ENDPOINT", "http://127.0.0.1:9000")
	t.Setenv("BLOB_S3_PATH_STYLE", "true")
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, orders.NumberingSequence, cfg.Numbering())

	sc := cfg.StorageConfig()
	assert.Equal(t, storage.DriverRedis, sc.Driver)
	assert.Equal(t, "10.0.0.5:6379", sc.RedisAddr)

	bc := cfg.BlobConfig()
	assert.Equal(t, blob.DriverS3, bc.Driver)
	assert.Equal(t, "veg", bc.S3.Bucket)
	assert.True(t, bc.S3.PathStyle)
}

func TestConfigValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"store driver":   func(c *Config) { c.StoreDriver = "postgres" },
		"blob driver":    func(c *Config) { c.BlobDriver = "ftp" },
		"s3 bucket":      func(c *Config) { c.BlobDriver = "s3"; c.BlobS3Bucket = "" },
		"numbering":      func(c *Config) { c.OrderNumbering = "random" },
		"negative limit": func(c *Config) { c.AppRateLimit = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := defaultConfig(t)
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := defaultConfig(t)
	assert.NoError(t, cfg.Validate())
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &Config{LogFormat: "json", LogLevel: "warn"})
	logger.Info("hidden")
	logger.Warn("shown", slog.String("key", "vegetable_orders"))
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"key":"vegetable_orders"`)

	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}
