package consumers

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/sentiview/internal/models"
	"github.com/spacesedan/sentiview/internal/render"
)

type memoryDeduper struct {
	rendered map[string]bool
	markErr  error
}

func newMemoryDeduper(ids ...string) *memoryDeduper {
	d := &memoryDeduper{rendered: map[string]bool{}}
	for _, id := range ids {
		d.rendered[id] = true
	}
	return d
}

func (d *memoryDeduper) IsRendered(_ context.Context, id string) bool { return d.rendered[id] }

func (d *memoryDeduper) MarkRendered(_ context.Context, id string) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.rendered[id] = true
	return nil
}

type published struct {
	topic string
	key   string
	value models.RenderedResponse
}

type recordingPublisher struct {
	sent     []published
	failures int
}

func (p *recordingPublisher) publish(topic, key string, value any) error {
	if p.failures > 0 {
		p.failures--
		return errors.New("broker unavailable")
	}
	p.sent = append(p.sent, published{topic: topic, key: key, value: value.(models.RenderedResponse)})
	return nil
}

func eventJSON(t *testing.T, event models.ChatResponseEvent) []byte {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return data
}

func newTestConsumer(d Deduper, p *recordingPublisher) *RenderConsumer {
	rc := NewRenderConsumer(render.New(), d, p.publish, "rendered-responses")
	rc.retryDelay = 0
	rc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return rc
}

func TestRenderConsumerProcess(t *testing.T) {
	rc := newTestConsumer(newMemoryDeduper(), &recordingPublisher{})

	value := eventJSON(t, models.ChatResponseEvent{
		MessageID: "m-1",
		ChatResponse: models.ChatResponse{
			ConversationID: "c-1",
			Response:       "Analyzed 3 feedbacks. Negative sentiment.\n\n**Main Issues:** Slow checkout.",
		},
	})

	got, ok, err := rc.Process(context.Background(), value, true)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "m-1", got.MessageID)
	assert.Equal(t, "c-1", got.ConversationID)
	assert.Equal(t, render.PresetClassic, got.Preset)
	assert.Equal(t, render.Negative, got.Sentiment)
	require.Len(t, got.Sections, 2)
	assert.Equal(t, "Slow checkout.", got.Sections[1].Body)
	assert.Contains(t, got.HTML, "Areas for Improvement")
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), got.RenderedAt)
}

func TestRenderConsumerProcessSkipsRendered(t *testing.T) {
	rc := newTestConsumer(newMemoryDeduper("m-1"), &recordingPublisher{})
	value := eventJSON(t, models.ChatResponseEvent{MessageID: "m-1"})

	_, ok, err := rc.Process(context.Background(), value, true)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = rc.Process(context.Background(), value, false)
	require.NoError(t, err)
	assert.True(t, ok, "unhealthy dedupe store is bypassed")
}

func TestRenderConsumerProcessAssignsID(t *testing.T) {
	rc := newTestConsumer(nil, &recordingPublisher{})

	got, ok, err := rc.Process(context.Background(), eventJSON(t, models.ChatResponseEvent{}), true)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, got.MessageID, 36)
	assert.Empty(t, got.Sections)
}

func TestRenderConsumerProcessInvalidJSON(t *testing.T) {
	rc := newTestConsumer(nil, &recordingPublisher{})

	_, _, err := rc.Process(context.Background(), []byte("{"), true)
	assert.Error(t, err)
}

func TestRenderConsumerFlush(t *testing.T) {
	d := newMemoryDeduper()
	p := &recordingPublisher{failures: 1}
	rc := newTestConsumer(d, p)

	rc.Buffer(models.RenderedResponse{MessageID: "m-1", ConversationID: "c-1"}, nil)
	rc.Buffer(models.RenderedResponse{MessageID: "m-2"}, nil)

	res := rc.Flush(context.Background(), true)

	assert.Equal(t, []string{"m-1", "m-2"}, res.Published)
	assert.Empty(t, res.Failed)
	require.Len(t, p.sent, 2)
	assert.Equal(t, "rendered-responses", p.sent[0].topic)
	assert.Equal(t, "c-1", p.sent[0].key)
	assert.Equal(t, "m-2", p.sent[1].key)
	assert.True(t, d.rendered["m-1"])
	assert.True(t, d.rendered["m-2"])
	assert.Empty(t, rc.Flush(context.Background(), true).Published)
}

func TestRenderConsumerFlushDropsAfterRetries(t *testing.T) {
	d := newMemoryDeduper()
	rc := newTestConsumer(d, &recordingPublisher{failures: publishAttempts})

	rc.Buffer(models.RenderedResponse{MessageID: "m-1"}, nil)

	res := rc.Flush(context.Background(), true)
	assert.Empty(t, res.Published)
	assert.Equal(t, []string{"m-1"}, res.Failed)
	assert.Empty(t, res.Rewinds)
	assert.False(t, d.rendered["m-1"])
}

func TestRenderConsumerFlushIgnoresMarkFailure(t *testing.T) {
	d := newMemoryDeduper()
	d.markErr = errors.New("valkey down")
	rc := newTestConsumer(d, &recordingPublisher{})

	rc.Buffer(models.RenderedResponse{MessageID: "m-1"}, nil)

	assert.Equal(t, []string{"m-1"}, rc.Flush(context.Background(), true).Published)
}

type recordingCommitter struct {
	commits [][]kafka.TopicPartition
	rewinds []kafka.TopicPartition
	err     error
}

func (c *recordingCommitter) CommitOffsets(offsets []kafka.TopicPartition) error {
	c.commits = append(c.commits, offsets)
	return c.err
}

func (c *recordingCommitter) Rewind(tp kafka.TopicPartition) error {
	c.rewinds = append(c.rewinds, tp)
	return nil
}

func kafkaMessage(t *testing.T, partition int32, offset kafka.Offset, event models.ChatResponseEvent) *kafka.Message {
	t.Helper()
	topic := "chat-responses"
	return &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: partition, Offset: offset},
		Value:          eventJSON(t, event),
	}
}

func committedOffsets(c *recordingCommitter) []kafka.Offset {
	var out []kafka.Offset
	for _, batch := range c.commits {
		for _, tp := range batch {
			out = append(out, tp.Offset)
		}
	}
	return out
}

func TestRenderConsumerSkippedMessageWaitsForBufferedOffset(t *testing.T) {
	p := &recordingPublisher{}
	rc := newTestConsumer(newMemoryDeduper("dup"), p)
	committer := &recordingCommitter{}
	ctx := context.Background()

	rc.handle(ctx, kafkaMessage(t, 0, 10, models.ChatResponseEvent{MessageID: "a"}), committer, true)
	rc.handle(ctx, kafkaMessage(t, 0, 11, models.ChatResponseEvent{MessageID: "dup"}), committer, true)
	rc.handle(ctx, &kafka.Message{TopicPartition: kafkaMessage(t, 0, 12, models.ChatResponseEvent{}).TopicPartition, Value: []byte("{")}, committer, true)

	assert.Empty(t, committer.commits, "offset 10 is buffered but not yet published")
	assert.Equal(t, 3, rc.tracker.Len())

	rc.flushAndCommit(ctx, committer, true)

	require.Len(t, p.sent, 1)
	assert.Equal(t, []kafka.Offset{13}, committedOffsets(committer))
	assert.Zero(t, rc.tracker.Len())
}

func TestRenderConsumerSkippedMessageCommitsWhenNothingBuffered(t *testing.T) {
	rc := newTestConsumer(newMemoryDeduper("dup"), &recordingPublisher{})
	committer := &recordingCommitter{}

	rc.handle(context.Background(), kafkaMessage(t, 0, 4, models.ChatResponseEvent{MessageID: "dup"}), committer, true)

	assert.Equal(t, []kafka.Offset{5}, committedOffsets(committer))
}

func TestRenderConsumerPublishFailureRewinds(t *testing.T) {
	d := newMemoryDeduper()
	rc := newTestConsumer(d, &recordingPublisher{failures: 100})
	committer := &recordingCommitter{}
	ctx := context.Background()

	rc.handle(ctx, kafkaMessage(t, 0, 10, models.ChatResponseEvent{MessageID: "m-1"}), committer, true)
	rc.handle(ctx, kafkaMessage(t, 0, 11, models.ChatResponseEvent{MessageID: "m-2"}), committer, true)
	rc.handle(ctx, kafkaMessage(t, 1, 3, models.ChatResponseEvent{MessageID: "m-1"}), committer, true)

	rc.flushAndCommit(ctx, committer, true)

	assert.Empty(t, committer.commits, "nothing past a failed offset is committed")
	require.Len(t, committer.rewinds, 2)
	assert.Equal(t, int32(0), committer.rewinds[0].Partition)
	assert.Equal(t, kafka.Offset(10), committer.rewinds[0].Offset)
	assert.Equal(t, int32(1), committer.rewinds[1].Partition)
	assert.Equal(t, kafka.Offset(3), committer.rewinds[1].Offset)
	assert.Zero(t, rc.tracker.Len())
	assert.False(t, d.rendered["m-1"])
}

func TestRenderConsumerPartialFailureCommitsPrefix(t *testing.T) {
	rc := newTestConsumer(newMemoryDeduper(), &recordingPublisher{})
	committer := &recordingCommitter{}
	ctx := context.Background()

	rc.handle(ctx, kafkaMessage(t, 0, 10, models.ChatResponseEvent{MessageID: "m-1"}), committer, true)
	rc.flushAndCommit(ctx, committer, true)

	failing := &recordingPublisher{failures: 100}
	rc.publish = failing.publish
	rc.handle(ctx, kafkaMessage(t, 0, 11, models.ChatResponseEvent{MessageID: "m-2"}), committer, true)
	rc.flushAndCommit(ctx, committer, true)

	assert.Equal(t, []kafka.Offset{11}, committedOffsets(committer))
	require.Len(t, committer.rewinds, 1)
	assert.Equal(t, kafka.Offset(11), committer.rewinds[0].Offset)
}

func TestAllHealthy(t *testing.T) {
	up, down := &atomic.Bool{}, &atomic.Bool{}
	up.Store(true)

	assert.True(t, AllHealthy(nil))
	assert.True(t, AllHealthy([]*atomic.Bool{up}))
	assert.False(t, AllHealthy([]*atomic.Bool{up, down}))
}
