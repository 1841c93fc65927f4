package kafka_client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

var ErrNoConsumer = errors.New("no consumer registered for topic")

// ConsumerFunc owns a subscribed consumer until ctx is done.
type ConsumerFunc func(ctx context.Context, consumer *kafka.Consumer)

var (
	registryMu       sync.RWMutex
	consumerRegistry = make(map[string]ConsumerFunc)
)

// RegisterConsumer binds fn to topic, replacing any earlier handler.
func RegisterConsumer(topic string, fn ConsumerFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := consumerRegistry[topic]; exists {
		slog.Warn("[ConsumerFactory] Replacing consumer", slog.String("topic", topic))
	}
	consumerRegistry[topic] = fn
}

func lookupConsumer(topic string) (ConsumerFunc, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	fn, ok := consumerRegistry[topic]
	return fn, ok
}

// RegisteredTopics lists the topics that have a consumer, sorted.
func RegisteredTopics() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	topics := make([]string, 0, len(consumerRegistry))
	for topic := range consumerRegistry {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}

// StartConsumer subscribes to cfg.Topic and runs its registered handler
// until ctx is done. The handler is resolved before any broker connection.
func StartConsumer(ctx context.Context, cfg KafkaConfig) error {
	fn, ok := lookupConsumer(cfg.Topic)
	if !ok {
		return fmt.Errorf("[ConsumerFactory] %w: %s (registered: %v)", ErrNoConsumer, cfg.Topic, RegisteredTopics())
	}

	consumer, err := NewConsumer(cfg)
	if err != nil {
		return fmt.Errorf("[ConsumerFactory] Failed to initialize Kafka consumer: %w", err)
	}
	defer func() {
		if err := consumer.Close(); err != nil {
			slog.Warn("[ConsumerFactory] Failed to close consumer",
				slog.String("topic", cfg.Topic),
				slog.String("error", err.Error()))
		}
	}()

	slog.Info("[ConsumerFactory] Starting consumer for topic...",
		slog.String("topic", cfg.Topic),
		slog.String("group_id", cfg.GroupID))
	fn(ctx, consumer)
	slog.Info("[ConsumerFactory] Consumer stopped", slog.String("topic", cfg.Topic))

	return nil
}
