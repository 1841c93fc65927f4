package utils

import (
	"sort"
	"sync"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

type partitionKey struct {
	topic     string
	partition int32
}

// MessageTracker follows consumed offsets until they are safe to commit. An
// offset becomes committable once it and every lower tracked offset on the
// same partition are done.
type MessageTracker struct {
	mu         sync.Mutex
	partitions map[partitionKey]map[kafka.Offset]bool
}

func NewMessageTracker() *MessageTracker {
	return &MessageTracker{partitions: make(map[partitionKey]map[kafka.Offset]bool)}
}

func keyOf(tp kafka.TopicPartition) partitionKey {
	key := partitionKey{partition: tp.Partition}
	if tp.Topic != nil {
		key.topic = *tp.Topic
	}
	return key
}

// Track registers an offset as taken but not yet done.
func (t *MessageTracker) Track(tp kafka.TopicPartition) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := keyOf(tp)
	offsets, ok := t.partitions[key]
	if !ok {
		offsets = make(map[kafka.Offset]bool)
		t.partitions[key] = offsets
	}
	offsets[tp.Offset] = false
}

// Done marks a tracked offset as finished. Untracked offsets are ignored.
func (t *MessageTracker) Done(tp kafka.TopicPartition) {
	t.mu.Lock()
	defer t.mu.Unlock()

	offsets, ok := t.partitions[keyOf(tp)]
	if !ok {
		return
	}
	if _, tracked := offsets[tp.Offset]; tracked {
		offsets[tp.Offset] = true
	}
}

// Fail forgets tp and every higher offset tracked on its partition, and
// returns the position the consumer has to rewind to. It reports false when
// tp is no longer tracked, e.g. after a lower offset already failed.
func (t *MessageTracker) Fail(tp kafka.TopicPartition) (kafka.TopicPartition, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := keyOf(tp)
	offsets, ok := t.partitions[key]
	if !ok {
		return kafka.TopicPartition{}, false
	}
	if _, tracked := offsets[tp.Offset]; !tracked {
		return kafka.TopicPartition{}, false
	}

	for o := range offsets {
		if o >= tp.Offset {
			delete(offsets, o)
		}
	}
	if len(offsets) == 0 {
		delete(t.partitions, key)
	}

	topic := key.topic
	return kafka.TopicPartition{Topic: &topic, Partition: key.partition, Offset: tp.Offset}, true
}

// Ready removes the done prefix of every partition and returns the offsets
// to commit, already advanced past the last done message.
func (t *MessageTracker) Ready() []kafka.TopicPartition {
	t.mu.Lock()
	defer t.mu.Unlock()

	var ready []kafka.TopicPartition
	for key, offsets := range t.partitions {
		sorted := make([]kafka.Offset, 0, len(offsets))
		for o := range offsets {
			sorted = append(sorted, o)
		}
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		last := kafka.OffsetInvalid
		for _, o := range sorted {
			if !offsets[o] {
				break
			}
			last = o
			delete(offsets, o)
		}
		if len(offsets) == 0 {
			delete(t.partitions, key)
		}
		if last == kafka.OffsetInvalid {
			continue
		}

		topic := key.topic
		ready = append(ready, kafka.TopicPartition{Topic: &topic, Partition: key.partition, Offset: last + 1})
	}

	sort.Slice(ready, func(i, j int) bool {
		if *ready[i].Topic != *ready[j].Topic {
			return *ready[i].Topic < *ready[j].Topic
		}
		return ready[i].Partition < ready[j].Partition
	})
	return ready
}

// Len returns the number of offsets still tracked.
func (t *MessageTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, offsets := range t.partitions {
		n += len(offsets)
	}
	return n
}
