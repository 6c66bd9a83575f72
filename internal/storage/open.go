package storage

import (
	"context"
	"fmt"
)

// Driver names a Backend implementation.
type Driver string

const (
	DriverSQLite Driver = "sqlite"
	DriverRedis  Driver = "redis"
	DriverMemory Driver = "memory"
)

// BackendConfig selects and configures a backend.
type BackendConfig struct {
	Driver      Driver
	SQLitePath  string
	RedisAddr   string
	RedisPrefix string
}

// OpenBackend constructs the backend named by cfg.Driver.
func OpenBackend(ctx context.Context, cfg BackendConfig) (Backend, error) {
	switch cfg.Driver {
	case DriverSQLite, "":
		return OpenSQLite(cfg.SQLitePath)
	case DriverRedis:
		client, err := DialRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		return NewRedisBackend(client, cfg.RedisPrefix), nil
	case DriverMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}
