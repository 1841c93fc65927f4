package kafka_client

import "time"

const (
	KAFKA_TOPIC_CHAT_RESPONSES     = "chat-responses"     // backend replies waiting to be rendered
	KAFKA_TOPIC_RENDERED_RESPONSES = "rendered-responses" // card sections ready for the chat view
)

const (
	MAX_RETRIES  = 5
	RETRY_DELAY  = 2 * time.Second
	POLL_TIMEOUT = 1 * time.Second
)
