package kafka_client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/spacesedan/sentiview/internal/clients/kafka_client/utils"
)

var producer *kafka.Producer

func InitProducer(cfg KafkaConfig) error {
	slog.Info("[KafkaClient] Initializing Kafka Producer...",
		slog.String("transactional_id", cfg.TransactionalID))

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":                     cfg.Broker,
		"security.protocol":                     "PLAINTEXT",
		"api.version.request":                   "true",
		"enable.idempotence":                    true,
		"acks":                                  "all",
		"max.in.flight.requests.per.connection": 1,
		"transactional.id":                      cfg.TransactionalID,
	})
	if err != nil {
		return fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	if err := p.InitTransactions(context.Background()); err != nil {
		p.Close()
		return fmt.Errorf("[KafkaClient] Failed to init transactions: %w", err)
	}

	producer = p
	slog.Info("[KafkaClient] Kafka Producer initialized successfully")
	return nil
}

func CloseProducer() {
	slog.Info("[KafkaClient] Shutting down Kafka producer...")
	if producer != nil {
		if remaining := producer.Flush(5000); remaining > 0 {
			slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
				slog.Int("remaining", remaining))
		}
		producer.Close()
		slog.Info("[KafkaClient] Kafka producer shut down")
	}
}

// PublishToKafka serializes value to JSON and produces it under key inside a
// single transaction.
func PublishToKafka(topic, key string, value any) error {
	if producer == nil {
		return fmt.Errorf("[KafkaClient] producer has not been initialized")
	}

	jsonData, err := utils.EncodeEvent(value)
	if err != nil {
		return err
	}

	if err := producer.BeginTransaction(); err != nil {
		return fmt.Errorf("[KafkaClient] failed to begin transaction: %w", err)
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(key),
		Value:          jsonData,
	}

	for i := 0; i < 3; i++ {
		err = producer.Produce(msg, nil)
		if err == nil {
			break
		}
		slog.Warn("[KafkaClient] Failed to produce message, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
	}
	if err != nil {
		if abortErr := producer.AbortTransaction(context.Background()); abortErr != nil {
			return fmt.Errorf("[KafkaClient] failed to abort transaction after produce error: %w", abortErr)
		}
		return err
	}

	var commitErr error
	for i := 0; i < 3; i++ {
		commitErr = producer.CommitTransaction(context.Background())
		if commitErr == nil {
			break
		}
		slog.Warn("[KafkaClient] Failed to commit transaction, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", commitErr.Error()))
	}
	if commitErr != nil {
		return fmt.Errorf("[KafkaClient] failed to commit transaction after 3 retries: %w", commitErr)
	}

	slog.Debug("[KafkaClient] Published message to Kafka transactionally",
		slog.String("topic", topic),
		slog.String("key", key))
	return nil
}
