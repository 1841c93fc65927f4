package models

import (
	"time"

	"github.com/spacesedan/sentiview/internal/render"
)

// ChatResponseEvent is a backend reply published for rendering. MessageID
// makes redelivery detectable.
type ChatResponseEvent struct {
	MessageID string `json:"message_id"`
	ChatResponse
}

type RenderedResponse struct {
	MessageID      string           `json:"message_id"`
	ConversationID string           `json:"conversation_id"`
	Preset         string           `json:"preset"`
	Sentiment      render.Sentiment `json:"sentiment"`
	Sections       []render.Section `json:"sections"`
	HTML           string           `json:"html"`
	RenderedAt     time.Time        `json:"rendered_at"`
}
