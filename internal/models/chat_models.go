package models

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
}

type TextAnalysisRequest struct {
	Reviews []string      `json:"reviews"`
	History []ChatMessage `json:"history,omitempty"`
}

// ChatResponse is what the backend returns for chat messages and CSV uploads.
type ChatResponse struct {
	ConversationID string            `json:"conversation_id"`
	Response       string            `json:"response"`
	Analysis       *FeedbackAnalysis `json:"analysis"`
	Metadata       map[string]any    `json:"metadata,omitempty"`
	IsQuestion     bool              `json:"is_question"`
	Success        bool              `json:"success"`
}

type QuickSentimentResponse struct {
	Text       string  `json:"text"`
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
}

// APIErrorBody is the error envelope of the backend.
type APIErrorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message,omitempty"`
}
