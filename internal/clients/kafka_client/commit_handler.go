package kafka_client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

// offsetStore is the part of *kafka.Consumer the commit handler drives.
type offsetStore interface {
	CommitOffsets(offsets []kafka.TopicPartition) ([]kafka.TopicPartition, error)
	Seek(partition kafka.TopicPartition, timeoutMs int) error
}

// KafkaCommitHandler commits explicit per-partition offsets and remembers the
// last one committed for each partition, so stale or repeated offsets never
// move a partition backwards.
type KafkaCommitHandler struct {
	store      offsetStore
	ctx        context.Context
	retryDelay time.Duration

	mu        sync.Mutex
	committed map[string]kafka.Offset
}

func NewCommitHandler(ctx context.Context, consumer *kafka.Consumer) *KafkaCommitHandler {
	ch := &KafkaCommitHandler{
		ctx:        ctx,
		retryDelay: RETRY_DELAY,
		committed:  make(map[string]kafka.Offset),
	}
	if consumer != nil {
		ch.store = consumer
	}
	return ch
}

func partitionID(tp kafka.TopicPartition) string {
	topic := ""
	if tp.Topic != nil {
		topic = *tp.Topic
	}
	return fmt.Sprintf("%s/%d", topic, tp.Partition)
}

// pending drops offsets at or below what has already been committed.
func (ch *KafkaCommitHandler) pending(offsets []kafka.TopicPartition) []kafka.TopicPartition {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	out := make([]kafka.TopicPartition, 0, len(offsets))
	for _, tp := range offsets {
		if last, ok := ch.committed[partitionID(tp)]; ok && tp.Offset <= last {
			continue
		}
		out = append(out, tp)
	}
	return out
}

func (ch *KafkaCommitHandler) remember(offsets []kafka.TopicPartition) {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	for _, tp := range offsets {
		ch.committed[partitionID(tp)] = tp.Offset
	}
}

// CommitOffsets commits the given next-to-read offsets, retrying transient
// failures up to MAX_RETRIES times.
func (ch *KafkaCommitHandler) CommitOffsets(offsets []kafka.TopicPartition) error {
	if ch.store == nil {
		return errors.New("[KafkaCommitHandler] Kafka consumer has not been initialized")
	}

	offsets = ch.pending(offsets)
	if len(offsets) == 0 {
		return nil
	}

	for i := 0; i < MAX_RETRIES; i++ {
		select {
		case <-ch.ctx.Done():
			slog.Warn("[KafkaCommitHandler] Context canceled, stopping commit")
			return ch.ctx.Err()
		default:
		}

		_, err := ch.store.CommitOffsets(offsets)
		if err == nil {
			ch.remember(offsets)
			for _, tp := range offsets {
				slog.Debug("[KafkaCommitHandler] Successfully committed offset",
					slog.Int("partition", int(tp.Partition)),
					slog.String("offset", tp.Offset.String()))
			}
			return nil
		}
		slog.Warn("[KafkaCommitHandler] Failed to commit offsets, retrying...",
			slog.Int("attempt", i+1),
			slog.Int("partitions", len(offsets)),
			slog.String("error", err.Error()))

		var kafkaErr kafka.Error
		if errors.As(err, &kafkaErr) && kafkaErr.Code() == kafka.ErrAllBrokersDown {
			slog.Error("[KafkaCommitHandler] All Kafka brokers are down. Aborting commit")
			return err
		}

		time.Sleep(ch.retryDelay)
	}

	return fmt.Errorf("[KafkaCommitHandler] Failed to commit offsets after %d retries", MAX_RETRIES)
}

// Rewind moves the consumer back to tp.Offset so the message there and
// everything after it on the partition is delivered again.
func (ch *KafkaCommitHandler) Rewind(tp kafka.TopicPartition) error {
	if ch.store == nil {
		return errors.New("[KafkaCommitHandler] Kafka consumer has not been initialized")
	}
	if err := ch.store.Seek(tp, 0); err != nil {
		return fmt.Errorf("[KafkaCommitHandler] failed to rewind %s to %s: %w",
			partitionID(tp), tp.Offset.String(), err)
	}
	slog.Info("[KafkaCommitHandler] Rewound partition for redelivery",
		slog.Int("partition", int(tp.Partition)),
		slog.String("offset", tp.Offset.String()))
	return nil
}
