package clients

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valkey-io/valkey-go"
)

func TestRenderedKeyIsPerMessage(t *testing.T) {
	assert.Equal(t, "sentiview:rendered:m-1", renderedKey("m-1"))
	assert.NotEqual(t, renderedKey("m-1"), renderedKey("m-2"))
}

func TestMarkError(t *testing.T) {
	assert.NoError(t, markError(nil))
	assert.NoError(t, markError(valkey.Nil), "marker already present")

	err := markError(errors.New("READONLY You can't write against a read only replica"))
	assert.ErrorContains(t, err, "failed to mark rendered")
}

func TestIsConnectionError(t *testing.T) {
	assert.False(t, isConnectionError(nil))
	assert.True(t, isConnectionError(errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")))
	assert.True(t, isConnectionError(errors.New("read: i/o timeout")))
	assert.False(t, isConnectionError(errors.New("WRONGTYPE Operation against a key")))
}
