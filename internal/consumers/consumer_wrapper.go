package consumers

import (
	"context"
	"sync/atomic"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

// HealthAwareConsumer is a consumer loop that is told whether the services it
// depends on are currently healthy.
type HealthAwareConsumer func(ctx context.Context, consumer *kafka.Consumer, health ...*atomic.Bool)

type ConsumerWrapper struct {
	fn     HealthAwareConsumer
	health []*atomic.Bool
}

func WrapConsumer(fn HealthAwareConsumer) ConsumerWrapper {
	return ConsumerWrapper{fn: fn}
}

func (cw ConsumerWrapper) WithHealthCheck(health *atomic.Bool) ConsumerWrapper {
	cw.health = append(cw.health, health)
	return cw
}

// Handler adapts the wrapped loop to kafka_client.RegisterConsumer.
func (cw ConsumerWrapper) Handler() func(ctx context.Context, consumer *kafka.Consumer) {
	return func(ctx context.Context, consumer *kafka.Consumer) {
		cw.fn(ctx, consumer, cw.health...)
	}
}

// AllHealthy reports true when every flag is set. No flags means healthy.
func AllHealthy(health []*atomic.Bool) bool {
	for _, h := range health {
		if h != nil && !h.Load() {
			return false
		}
	}
	return true
}
