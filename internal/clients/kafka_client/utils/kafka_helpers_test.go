package utils

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	MessageID string `json:"message_id"`
}

func TestEncodeDecodeEvent(t *testing.T) {
	data, err := EncodeEvent(event{MessageID: "m-1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"message_id":"m-1"}`, string(data))

	got, err := DecodeEvent[event](data)
	require.NoError(t, err)
	assert.Equal(t, "m-1", got.MessageID)
}

func TestEncodeDecodeErrors(t *testing.T) {
	_, err := EncodeEvent(make(chan int))
	assert.Error(t, err)

	_, err = DecodeEvent[event]([]byte("{"))
	assert.ErrorContains(t, err, "utils.event")
}

func TestOffsetAttr(t *testing.T) {
	topic := "chat-responses"
	attr := OffsetAttr(kafka.TopicPartition{Topic: &topic, Partition: 2, Offset: 9})

	assert.Equal(t, "kafka", attr.Key)
	assert.Contains(t, attr.Value.String(), "chat-responses")
	assert.Equal(t, "kafka", OffsetAttr(kafka.TopicPartition{}).Key)
}

func TestHandleConsumerError(t *testing.T) {
	assert.False(t, HandleConsumerError(nil))
	assert.False(t, HandleConsumerError(errors.New("broker transport failure")))
	assert.True(t, HandleConsumerError(context.Canceled))
	assert.True(t, HandleConsumerError(fmt.Errorf("read: %w", context.DeadlineExceeded)))
	assert.False(t, HandleConsumerError(kafka.NewError(kafka.ErrTransport, "transport", false)))
}
