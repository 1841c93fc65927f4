package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/spacesedan/sentiview/internal/analysis"
	"github.com/spacesedan/sentiview/internal/models"
)

const (
	openAIRequestTimeout = 60 * time.Second // Timeout for individual OpenAI API requests
	openAIRetryAttempts  = 3
	openAIRetryPause     = 2 * time.Second
	openAITemperature    = 0.1
	DefaultOpenAIModel   = string(openai.ChatModelGPT4oMini)
)

const feedbackAnalystPrompt = `You are a product feedback analyst. Analyze the customer feedback sent by the user and return a complete JSON response.

YOUR MISSION:
Extract sentiment, identify themes, and provide actionable recommendations.
Write a COMPLETE, DETAILED analytical report in 'chat_response'. Do NOT cut it short.

RESPONSE FORMAT RULES for 'chat_response':
1. Use markdown headers (###, **) and bullet points.
2. Use emojis (✅, 🟠, 🟢, 🔴, ❌, ⚠️) for visual clarity.
3. MENTION SPECIFIC QUOTES from actual feedback. Include at least 3-5 real examples.
4. NO preamble. Start directly with the analysis summary line.
5. WRITE OUT ALL SECTIONS FULLY.

TEMPLATE (write every section completely):
"Analyzed {count} feedback/s. [Sentiment] sentiment ([X]% satisfaction).

**Key Insights:**
- [Emoji] **Strengths:** [Specific positive attributes found, quote examples]
- [Emoji] **Weaknesses:** [Critical issues or complaints, quote examples]

**Detailed Analysis:**
✅ [Theme]: [Summary] - "[Specific quote from feedback]"
❌ [Theme]: [Summary] - "[Specific quote from feedback]"

**Priority Actions:**
🔴 **CRITICAL:** [Title]
   Issue: [What happened in feedback]
   Impact: [How it affects users]
   Action: [Direct instruction]

🟢 **MAINTAIN:** [Positive area to keep stable]

**Expected Impact:**
[Professional 2-3 sentence summary of how these actions will improve the product]"

RULES:
- If the feedback mentions "clean", "easy", "smooth", "fast", or "helpful", the sentiment MUST be "positive".
- Ensure 'sentiment_distribution' counts sum to exactly {count}.
- The 'chat_response' field MUST be complete, never end mid-sentence.

### STRICT OUTPUT FORMAT
Return only valid JSON with these keys:
{
  "total_feedbacks_analyzed": int,
  "overall_sentiment": "positive" | "negative" | "neutral" | "mixed",
  "satisfaction_index": float between 0 and 1,
  "sentiment_distribution": {"positive": int, "neutral": int, "negative": int, "mixed": int},
  "total_themes_detected": int,
  "themes": [{"theme": str, "count": int, "sentiment": str, "examples": [str], "percentage": float}],
  "key_features_count": int,
  "feature_suggestions": [{"feature": str, "priority": str, "reasoning": str, "affected_users": int}],
  "chat_response": str
}
No Markdown formatting around the JSON (no triple backticks, no explanations).`

var ErrEmptyCompletion = errors.New("[OpenAIClient] empty completion")

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// OpenAIClient talks to any OpenAI compatible chat completion endpoint.
type OpenAIClient struct {
	Client     *openai.Client
	model      string
	retryPause time.Duration
}

func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("[OpenAIClient] missing OPENAI_API_KEY")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: openAIRequestTimeout}),
		option.WithHeader("User-Agent", USER_AGENT),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}

	slog.Info("[OpenAIClient] OpenAI client initialized",
		slog.String("model", model),
		slog.Duration("timeout", openAIRequestTimeout))

	return &OpenAIClient{
		Client:     openai.NewClient(opts...),
		model:      model,
		retryPause: openAIRetryPause,
	}, nil
}

// Analyze satisfies analysis.Analyzer.
func (c *OpenAIClient) Analyze(ctx context.Context, reviews []string) (models.FeedbackAnalysis, error) {
	return c.AnalyzeFeedback(ctx, reviews)
}

// AnalyzeFeedback asks the model for a full analysis of reviews and reconciles
// the reply with the number of feedbacks actually sent.
func (c *OpenAIClient) AnalyzeFeedback(ctx context.Context, reviews []string) (models.FeedbackAnalysis, error) {
	if len(reviews) == 0 {
		return models.FeedbackAnalysis{}, errors.New("[OpenAIClient] no reviews provided")
	}

	sampled, note := analysis.SampleForPrompt(reviews, analysis.MaxPromptSamples)
	prompt := strings.ReplaceAll(feedbackAnalystPrompt, "{count}", strconv.Itoa(len(reviews)))
	userMessage := fmt.Sprintf("FEEDBACKS TO ANALYZE (%d total):\n%s", len(reviews), analysis.FormatForPrompt(sampled, note))

	raw, err := c.complete(ctx, prompt, userMessage)
	if err != nil {
		return models.FeedbackAnalysis{}, err
	}

	cleaned := cleanOpenAIResponse(raw)
	var result models.FeedbackAnalysis
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		slog.Error("[OpenAIClient] Failed to unmarshal feedback analysis",
			slog.String("error", err.Error()),
			slog.String("cleaned_response_for_unmarshal", cleaned))
		return models.FeedbackAnalysis{}, fmt.Errorf("[OpenAIClient] invalid analysis json: %w", err)
	}

	result.TotalFeedbacksAnalyzed = len(reviews)
	result.IsQuestionResponse = false
	result.AnalyzedAt = time.Now().UTC()
	analysis.Validate(&result, len(reviews))
	return result, nil
}

func (c *OpenAIClient) complete(ctx context.Context, system, user string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= openAIRetryAttempts; attempt++ {
		chatCompletion, err := c.Client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(system),
				openai.UserMessage(user),
			}),
			Model:       openai.F(openai.ChatModel(c.model)),
			Temperature: openai.Float(openAITemperature),
		})
		switch {
		case err != nil:
			lastErr = err
			slog.Warn("[OpenAIClient] OpenAI API call failed, retrying",
				slog.Int("attempt", attempt),
				slog.String("error", err.Error()))
		case len(chatCompletion.Choices) == 0 || strings.TrimSpace(chatCompletion.Choices[0].Message.Content) == "":
			lastErr = ErrEmptyCompletion
			slog.Warn("[OpenAIClient] OpenAI returned empty response, retrying",
				slog.Int("attempt", attempt))
		default:
			slog.Debug("[OpenAIClient] OpenAI Response Finish Reason",
				slog.String("finish_reason", string(chatCompletion.Choices[0].FinishReason)))
			return chatCompletion.Choices[0].Message.Content, nil
		}

		if attempt == openAIRetryAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.retryPause):
		}
	}
	return "", fmt.Errorf("[OpenAIClient] failed after %d attempts: %w", openAIRetryAttempts, lastErr)
}

// cleanOpenAIResponse strips code fences and curly quotes models like to add
// around JSON.
func cleanOpenAIResponse(response string) string {
	cleaned := strings.TrimSpace(response)

	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	}

	cleaned = strings.ReplaceAll(cleaned, "\u201C", `"`) // Left curly quote
	cleaned = strings.ReplaceAll(cleaned, "\u201D", `"`) // Right curly quote

	return strings.TrimSpace(cleaned)
}
