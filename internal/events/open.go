package events

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/EuclidesAnchundia/Tutorias/common_library/logging"
	"github.com/EuclidesAnchundia/Tutorias/internal/config"
)

// Open builds the bus named by cfg.EventsDriver. instance names this
// process and keeps Kafka consumer groups apart.
func Open(ctx context.Context, cfg *config.Config, instance string, logger *logging.Logger) (Bus, error) {
	switch cfg.EventsDriver {
	case "local":
		return NewLocal(), nil
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
		return NewRedis(rdb, cfg.EventsRedisChannel, logger), nil
	case "kafka":
		groupID := fmt.Sprintf("%s-%s", cfg.KafkaGroupPrefix, instance)
		return NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic, groupID, logger), nil
	default:
		return nil, fmt.Errorf("unknown events driver %q", cfg.EventsDriver)
	}
}
