package events

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/EuclidesAnchundia/Tutorias/common_library/logging"
)

// Redis publishes changes on one pub/sub channel.
type Redis struct {
	rdb     *redis.Client
	channel string
	logger  *logging.Logger
}

func NewRedis(rdb *redis.Client, channel string, logger *logging.Logger) *Redis {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Redis{rdb: rdb, channel: channel, logger: logger}
}

func (b *Redis) Publish(ctx context.Context, c Change) error {
	data, err := encodeChange(c)
	if err != nil {
		return err
	}
	if err := b.rdb.Publish(ctx, b.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish change: %w", err)
	}
	return nil
}

func (b *Redis) Subscribe(ctx context.Context) (<-chan Change, error) {
	ps := b.rdb.Subscribe(ctx, b.channel)
	// wait for the subscription confirmation so no publish is missed
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", b.channel, err)
	}

	out := make(chan Change, subscriberBuffer)
	go func() {
		defer close(out)
		defer func() { _ = ps.Close() }()

		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				c, err := decodeChange([]byte(msg.Payload))
				if err != nil {
					b.logger.Warn(ctx, "Failed to decode change",
						zap.String("channel", msg.Channel),
						zap.Error(err),
					)
					continue
				}
				select {
				case out <- c:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (b *Redis) Close() error {
	return b.rdb.Close()
}
