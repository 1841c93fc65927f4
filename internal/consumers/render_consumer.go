package consumers

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/google/uuid"

	"github.com/spacesedan/sentiview/internal/clients/kafka_client"
	kafkautils "github.com/spacesedan/sentiview/internal/clients/kafka_client/utils"
	"github.com/spacesedan/sentiview/internal/models"
	"github.com/spacesedan/sentiview/internal/present"
	"github.com/spacesedan/sentiview/internal/render"
	"github.com/spacesedan/sentiview/internal/utils"
)

const publishAttempts = 3

// Deduper remembers which messages have already been rendered.
type Deduper interface {
	IsRendered(ctx context.Context, messageID string) bool
	MarkRendered(ctx context.Context, messageID string) error
}

// Publisher matches kafka_client.PublishToKafka.
type Publisher func(topic, key string, value any) error

// OffsetCommitter is satisfied by *kafka_client.KafkaCommitHandler.
type OffsetCommitter interface {
	CommitOffsets(offsets []kafka.TopicPartition) error
	Rewind(tp kafka.TopicPartition) error
}

// renderJob is a rendered response waiting to be published. source is nil
// for responses that did not come from kafka.
type renderJob struct {
	rendered models.RenderedResponse
	source   *kafka.TopicPartition
}

// FlushResult reports what a flush did. Rewinds are the partition positions
// the consumer has to return to so failed responses are delivered again.
type FlushResult struct {
	Published []string
	Failed    []string
	Rewinds   []kafka.TopicPartition
}

// RenderConsumer turns backend chat replies into rendered card sections.
// Offsets are committed only once every lower offset on the partition has
// been published or skipped.
type RenderConsumer struct {
	renderer    *render.Renderer
	dedupe      Deduper
	publish     Publisher
	outputTopic string
	buffer      *utils.BatchBuffer[renderJob]
	tracker     *utils.MessageTracker
	retryDelay  time.Duration
	now         func() time.Time
}

// NewRenderConsumer wires a consumer. dedupe may be nil, in which case every
// message is rendered.
func NewRenderConsumer(renderer *render.Renderer, dedupe Deduper, publish Publisher, outputTopic string) *RenderConsumer {
	return &RenderConsumer{
		renderer:    renderer,
		dedupe:      dedupe,
		publish:     publish,
		outputTopic: outputTopic,
		buffer:      utils.NewBatchBuffer[renderJob](),
		tracker:     utils.NewMessageTracker(),
		retryDelay:  kafka_client.RETRY_DELAY,
		now:         time.Now,
	}
}

// Process decodes one chat response event and renders it. The bool is false
// when the message was rendered before and should only be committed.
func (rc *RenderConsumer) Process(ctx context.Context, value []byte, dedupeHealthy bool) (models.RenderedResponse, bool, error) {
	event, err := kafkautils.DecodeEvent[models.ChatResponseEvent](value)
	if err != nil {
		return models.RenderedResponse{}, false, fmt.Errorf("[RenderConsumer] invalid chat response event: %w", err)
	}

	if event.MessageID == "" {
		event.MessageID = uuid.NewString()
	} else if dedupeHealthy && rc.dedupe != nil && rc.dedupe.IsRendered(ctx, event.MessageID) {
		return models.RenderedResponse{}, false, nil
	}

	resp := rc.renderer.Render(event.Response)
	return models.RenderedResponse{
		MessageID:      event.MessageID,
		ConversationID: event.ConversationID,
		Preset:         rc.renderer.Preset(),
		Sentiment:      resp.Sentiment,
		Sections:       resp.Sections,
		HTML:           present.HTML(resp),
		RenderedAt:     rc.now().UTC(),
	}, true, nil
}

// Buffer queues a rendered response and reports whether the batch is full.
// source is the offset the response was read from, or nil.
func (rc *RenderConsumer) Buffer(r models.RenderedResponse, source *kafka.TopicPartition) bool {
	return rc.buffer.Add(renderJob{rendered: r, source: source})
}

func (rc *RenderConsumer) publishWithRetry(r models.RenderedResponse) error {
	key := r.ConversationID
	if key == "" {
		key = r.MessageID
	}

	var err error
	for i := 0; i < publishAttempts; i++ {
		if err = rc.publish(rc.outputTopic, key, r); err == nil {
			return nil
		}
		slog.Warn("[RenderConsumer] Publishing failed",
			slog.Int("attempt", i+1),
			slog.String("message_id", r.MessageID),
			slog.String("error", err.Error()))
		time.Sleep(rc.retryDelay)
	}
	return err
}

// Flush publishes every buffered response. Published offsets are marked done
// in the tracker; a failed offset is dropped from the tracker together with
// everything after it on its partition and reported as a rewind. Published
// ids are marked rendered when dedupe is healthy.
func (rc *RenderConsumer) Flush(ctx context.Context, dedupeHealthy bool) FlushResult {
	var res FlushResult
	batch := rc.buffer.GetAndClear()
	if len(batch) == 0 {
		return res
	}
	slog.Info("[RenderConsumer] Flushing rendered batch", slog.Int("batch_size", len(batch)))

	for _, job := range batch {
		r := job.rendered
		if err := rc.publishWithRetry(r); err != nil {
			slog.Error("[RenderConsumer] Rendered response not published, it will be redelivered",
				slog.String("message_id", r.MessageID),
				slog.String("error", err.Error()))
			res.Failed = append(res.Failed, r.MessageID)
			if job.source != nil {
				if tp, ok := rc.tracker.Fail(*job.source); ok {
					res.Rewinds = append(res.Rewinds, tp)
				}
			}
			continue
		}

		if job.source != nil {
			rc.tracker.Done(*job.source)
		}
		if dedupeHealthy && rc.dedupe != nil {
			if err := rc.dedupe.MarkRendered(ctx, r.MessageID); err != nil {
				slog.Warn("[RenderConsumer] Failed to mark message rendered",
					slog.String("message_id", r.MessageID),
					slog.String("error", err.Error()))
			}
		}
		res.Published = append(res.Published, r.MessageID)
	}
	return res
}

// commitReady commits every offset whose partition prefix is finished.
func (rc *RenderConsumer) commitReady(committer OffsetCommitter) {
	offsets := rc.tracker.Ready()
	if len(offsets) == 0 {
		return
	}
	if err := committer.CommitOffsets(offsets); err != nil {
		slog.Warn("[RenderConsumer] Failed to commit offsets",
			slog.Int("partitions", len(offsets)),
			slog.String("error", err.Error()))
	}
}

func (rc *RenderConsumer) flushAndCommit(ctx context.Context, committer OffsetCommitter, dedupeHealthy bool) {
	res := rc.Flush(ctx, dedupeHealthy)
	rc.commitReady(committer)
	for _, tp := range res.Rewinds {
		if err := committer.Rewind(tp); err != nil {
			slog.Error("[RenderConsumer] Failed to rewind partition",
				kafkautils.OffsetAttr(tp),
				slog.String("error", err.Error()))
		}
	}
}

// handle tracks msg and either buffers its rendering or, for undecodable and
// already rendered messages, marks it done straight away. Nothing is
// committed past an offset that is still buffered.
func (rc *RenderConsumer) handle(ctx context.Context, msg *kafka.Message, committer OffsetCommitter, dedupeHealthy bool) {
	source := msg.TopicPartition
	rc.tracker.Track(source)

	rendered, ok, err := rc.Process(ctx, msg.Value, dedupeHealthy)
	switch {
	case err != nil:
		slog.Error("[RenderConsumer] Skipping undecodable message",
			kafkautils.OffsetAttr(source),
			slog.String("error", err.Error()))
	case !ok:
		slog.Info("[RenderConsumer] Skipping already rendered message", kafkautils.OffsetAttr(source))
	default:
		if rc.Buffer(rendered, &source) {
			rc.flushAndCommit(ctx, committer, dedupeHealthy)
		}
		return
	}

	rc.tracker.Done(source)
	rc.commitReady(committer)
}

func (rc *RenderConsumer) shutdown(consumer *kafka.Consumer, health []*atomic.Bool) {
	slog.Warn("[RenderConsumer] Consumer shutting down, flushing remaining batch...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	rc.flushAndCommit(ctx, kafka_client.NewCommitHandler(ctx, consumer), AllHealthy(health))
}

// Start consumes until ctx is cancelled. health reports on the dedupe store;
// while it is unhealthy messages are rendered without the redelivery check.
func (rc *RenderConsumer) Start(ctx context.Context, consumer *kafka.Consumer, health ...*atomic.Bool) {
	iterator := kafka_client.NewKafkaMessageIterator(ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer)

	slog.Info("[RenderConsumer] Listening for messages...", slog.String("preset", rc.renderer.Preset()))

	ticker := time.NewTicker(utils.BATCH_TIMEOUT)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			rc.shutdown(consumer, health)
			return
		case <-ticker.C:
			rc.flushAndCommit(ctx, committer, AllHealthy(health))
		default:
			msg, err := iterator.Next()
			if err != nil {
				if kafkautils.HandleConsumerError(err) {
					rc.shutdown(consumer, health)
					return
				}
				continue
			}
			if msg == nil {
				continue
			}
			rc.handle(ctx, msg, committer, AllHealthy(health))
		}
	}
}
