package events

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/EuclidesAnchundia/Tutorias/common_library/logging"
)

// Kafka writes changes to one topic. Every process reads it through its
// own consumer group so each one sees every change.
type Kafka struct {
	writer  *kafka.Writer
	brokers []string
	topic   string
	groupID string
	logger  *logging.Logger
}

func NewKafka(brokers []string, topic, groupID string, logger *logging.Logger) *Kafka {
	if logger == nil {
		logger = logging.NewNop()
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireOne,
		Async:                  false,
		AllowAutoTopicCreation: true,
	}
	return &Kafka{
		writer:  writer,
		brokers: brokers,
		topic:   topic,
		groupID: groupID,
		logger:  logger,
	}
}

func (b *Kafka) Publish(ctx context.Context, c Change) error {
	data, err := encodeChange(c)
	if err != nil {
		return err
	}
	message := kafka.Message{
		Key:   []byte(c.Key),
		Value: data,
		Time:  time.Now(),
	}
	if err := b.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to send change: %w", err)
	}
	return nil
}

func (b *Kafka) Subscribe(ctx context.Context) (<-chan Change, error) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     b.brokers,
		GroupID:     b.groupID,
		GroupTopics: []string{b.topic},
		StartOffset: kafka.LastOffset,
	})

	out := make(chan Change, subscriberBuffer)
	go func() {
		defer close(out)
		defer func() { _ = reader.Close() }()

		for {
			msg, err := reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				b.logger.Error(ctx, "Failed to fetch message", zap.Error(err))
				continue
			}

			c, err := decodeChange(msg.Value)
			if err != nil {
				b.logger.Warn(ctx, "Failed to unmarshal message",
					zap.String("topic", msg.Topic),
					zap.ByteString("value", msg.Value),
					zap.Error(err),
				)
			} else {
				select {
				case out <- c:
				case <-ctx.Done():
					return
				}
			}

			if err := reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
				b.logger.Error(ctx, "Failed to commit message", zap.Error(err))
			}
		}
	}()
	return out, nil
}

func (b *Kafka) Close() error {
	return b.writer.Close()
}
