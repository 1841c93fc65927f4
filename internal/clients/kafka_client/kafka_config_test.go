package kafka_client

import (
	"context"
	"testing"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/stretchr/testify/assert"
)

func TestGetKafkaConfigDefaults(t *testing.T) {
	cfg := GetKafkaConfig()

	assert.Equal(t, KAFKA_TOPIC_CHAT_RESPONSES, cfg.Topic)
	assert.Equal(t, KAFKA_TOPIC_RENDERED_RESPONSES, cfg.OutputTopic)
}

func TestGetKafkaConfigFromEnv(t *testing.T) {
	t.Setenv("KAFKA_BROKER", "kafka:9092")
	t.Setenv("KAFKA_CONSUMER_GROUP_ID", "render-test")
	t.Setenv("KAFKA_OUTPUT_TOPIC", "cards")
	t.Setenv("KAFKA_TRANSACTIONAL_ID", "render-test-1")

	cfg := GetKafkaConfig()

	assert.Equal(t, "kafka:9092", cfg.Broker)
	assert.Equal(t, "render-test", cfg.GroupID)
	assert.Equal(t, "cards", cfg.OutputTopic)
	assert.Equal(t, "render-test-1", cfg.TransactionalID)
}

func TestStartConsumerUnregisteredTopic(t *testing.T) {
	err := StartConsumer(context.Background(), KafkaConfig{Topic: "nobody-listens"})
	assert.ErrorIs(t, err, ErrNoConsumer)
}

func TestRegisterConsumer(t *testing.T) {
	RegisterConsumer("registered", func(context.Context, *kafka.Consumer) {})
	t.Cleanup(func() {
		registryMu.Lock()
		delete(consumerRegistry, "registered")
		registryMu.Unlock()
	})

	_, ok := lookupConsumer("registered")
	assert.True(t, ok)
	assert.Contains(t, RegisteredTopics(), "registered")
}

func TestPublishWithoutProducer(t *testing.T) {
	assert.Error(t, PublishToKafka(KAFKA_TOPIC_RENDERED_RESPONSES, "k", map[string]string{"a": "b"}))
}
