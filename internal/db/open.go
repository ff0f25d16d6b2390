package db

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/javiermolinar/timetable/internal/config"
)

// Open creates the backend selected by the storage configuration.
func Open(ctx context.Context, cfg config.StorageConfig) (Backend, error) {
	switch cfg.Backend {
	case config.BackendSQLite, "":
		return NewSQLite(cfg.DBPath)
	case config.BackendRedis:
		prefix := cfg.RedisPrefix
		if prefix == "" {
			prefix = DefaultRedisPrefix
		}
		return NewRedis(ctx, &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, prefix)
	case config.BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
