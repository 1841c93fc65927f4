package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

// EncodeEvent marshals an event for the value of a produced message.
func EncodeEvent(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		slog.Warn("[KafkaUtils] Failed to encode event",
			slog.String("type", fmt.Sprintf("%T", value)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("[KafkaUtils] encode %T: %w", value, err)
	}
	return data, nil
}

// DecodeEvent unmarshals a consumed message value into T.
func DecodeEvent[T any](value []byte) (T, error) {
	var event T
	if err := json.Unmarshal(value, &event); err != nil {
		slog.Warn("[KafkaUtils] Failed to decode event",
			slog.String("type", fmt.Sprintf("%T", event)),
			slog.Int("bytes", len(value)),
			slog.String("error", err.Error()))
		return event, fmt.Errorf("[KafkaUtils] decode %T: %w", event, err)
	}
	return event, nil
}

// OffsetAttr groups the position of a message for log lines.
func OffsetAttr(tp kafka.TopicPartition) slog.Attr {
	topic := ""
	if tp.Topic != nil {
		topic = *tp.Topic
	}
	return slog.Group("kafka",
		slog.String("topic", topic),
		slog.Int("partition", int(tp.Partition)),
		slog.String("offset", tp.Offset.String()))
}

// HandleConsumerError logs err and reports whether the consumer loop has to
// stop: the context is done or the client hit a fatal error.
func HandleConsumerError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		slog.Debug("[KafkaUtils] Consumer context finished", slog.String("error", err.Error()))
		return true
	}

	var kafkaErr kafka.Error
	if errors.As(err, &kafkaErr) && kafkaErr.IsFatal() {
		slog.Error("[KafkaUtils] Fatal Kafka consumer error",
			slog.String("code", kafkaErr.Code().String()),
			slog.String("error", err.Error()))
		return true
	}

	slog.Error("[KafkaUtils] Kafka Consumer Error",
		slog.String("error", err.Error()))
	return false
}
