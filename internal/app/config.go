package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/mos234/vegetable-orders/internal/blob"
	"github.com/mos234/vegetable-orders/internal/orders"
	"github.com/mos234/vegetable-orders/internal/storage"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:"127.0.0.1:8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`
	AppRateLimit      int           `envconfig:"APP_RATE_LIMIT" default:"120"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	StoreDriver string `envconfig:"STORE_DRIVER" default:"sqlite"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"vegetable-orders.db"`
	RedisAddr   string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	RedisPrefix string `envconfig:"REDIS_PREFIX" default:"vegorders:"`

	OrderNumbering string `envconfig:"ORDER_NUMBERING" default:"last"`
	Locale         string `envconfig:"APP_LOCALE" default:"he"`
	CountryCode    string `envconfig:"COUNTRY_CODE" default:"972"`
	CurrencySymbol string `envconfig:"CURRENCY_SYMBOL" default:"₪"`

	BlobDriver      string `envconfig:"BLOB_DRIVER" default:"fs"`
	BlobRoot        string `envconfig:"BLOB_ROOT" default:"blobdata"`
	BlobS3Bucket    string `envconfig:"BLOB_S3_BUCKET"`
	BlobS3Region    string `envconfig:"BLOB_S3_REGION" default:"us-east-1"`
	BlobS3Endpoint  string `envconfig:"BLOB_S3_ENDPOINT"`
	BlobS3PathStyle bool   `envconfig:"BLOB_S3_PATH_STYLE" default:"false"`

	BackupCron string `envconfig:"BACKUP_CRON" default:"0 2 * * *"`
	ReportCron string `envconfig:"REPORT_CRON" default:"0 6 1 * *"`

	JobsEnabled       bool   `envconfig:"JOBS_ENABLED" default:"false"`
	WorkerConcurrency int    `envconfig:"WORKER_CONCURRENCY" default:"2"`
	WorkerMetricsAddr string `envconfig:"WORKER_METRICS_ADDR"`
}

// LoadConfig reads configuration from environment variables. A .env file in
// the working directory is loaded first; variables already set win.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unknown drivers and policies.
func (c *Config) Validate() error {
	switch storage.Driver(c.StoreDriver) {
	case storage.DriverSQLite, storage.DriverRedis, storage.DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	switch blob.Driver(c.BlobDriver) {
	case blob.DriverFilesystem, blob.DriverMemory:
	case blob.DriverS3:
		if c.BlobS3Bucket == "" {
			return errors.New("BLOB_S3_BUCKET must be provided for the s3 blob driver")
		}
	default:
		return fmt.Errorf("unknown BLOB_DRIVER %q", c.BlobDriver)
	}
	if _, err := orders.ParseNumbering(c.OrderNumbering); err != nil {
		return err
	}
	if c.AppRateLimit < 0 {
		return errors.New("APP_RATE_LIMIT must not be negative")
	}
	return nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// Numbering returns the configured order numbering policy.
func (c *Config) Numbering() orders.Numbering {
	n, err := orders.ParseNumbering(c.OrderNumbering)
	if err != nil {
		return orders.NumberingLast
	}
	return n
}

// StorageConfig maps the store settings onto storage.BackendConfig.
func (c *Config) StorageConfig() storage.BackendConfig {
	return storage.BackendConfig{
		Driver:      storage.Driver(c.StoreDriver),
		SQLitePath:  c.SQLitePath,
		RedisAddr:   c.RedisAddr,
		RedisPrefix: c.RedisPrefix,
	}
}

// BlobConfig maps the blob settings onto blob.Config.
func (c *Config) BlobConfig() blob.Config {
	return blob.Config{
		Driver: blob.Driver(c.BlobDriver),
		Root:   c.BlobRoot,
		S3: blob.S3Config{
			Bucket:    c.BlobS3Bucket,
			Region:    c.BlobS3Region,
			Endpoint:  c.BlobS3Endpoint,
			PathStyle: c.BlobS3PathStyle,
		},
	}
}
