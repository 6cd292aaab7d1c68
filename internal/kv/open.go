package kv

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/EuclidesAnchundia/Tutorias/internal/config"
)

// Open builds the backend named by cfg.StorageDriver wrapped in the
// retrying decorator.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.StorageDriver {
	case "memory":
		s = NewMemory()
	case "bolt":
		s, err = OpenBolt(cfg.BoltPath)
	case "sqlite":
		s, err = OpenSQLite(cfg.SQLitePath)
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisURL,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		s = NewRedis(rdb, cfg.StorageKeyPrefix)
	case "postgres":
		s, err = OpenPostgres(ctx, PostgresConfig{
			URL:         cfg.PostgresURL,
			MaxConns:    cfg.PostgresMaxConn,
			MinConns:    cfg.PostgresMinConn,
			AutoMigrate: cfg.PostgresAutoMigrate,
			Prefix:      cfg.StorageKeyPrefix,
		})
	case "s3":
		s, err = OpenS3(ctx, S3Config{
			Bucket:          cfg.S3Bucket,
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Prefix:          cfg.StorageKeyPrefix,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.StorageDriver, err)
	}
	return NewRetrying(s, cfg.RetryMaxAttempts, cfg.RetryBaseDelay), nil
}
