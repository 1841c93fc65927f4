package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/spacesedan/sentiview/internal/models"
)

const feedbackAPIRequestTimeout = 120 * time.Second

// APIError is a non-retryable error response from the feedback backend.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[FeedbackAPIClient] request failed with status %d: %s", e.StatusCode, e.Detail)
}

// FeedbackAPIClient calls the feedback backend's /analyze endpoints.
type FeedbackAPIClient struct {
	baseURL        string
	httpClient     *http.Client
	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

type FeedbackAPIOption func(*FeedbackAPIClient)

func WithHTTPClient(c *http.Client) FeedbackAPIOption {
	return func(fc *FeedbackAPIClient) { fc.httpClient = c }
}

func WithBackoff(initial, maxBackoff time.Duration) FeedbackAPIOption {
	return func(fc *FeedbackAPIClient) {
		fc.initialBackoff = initial
		fc.maxBackoff = maxBackoff
	}
}

func WithMaxRetries(n int) FeedbackAPIOption {
	return func(fc *FeedbackAPIClient) { fc.maxRetries = n }
}

// NewFeedbackAPIClient builds a client for baseURL. A non-empty token is sent
// as a bearer token on every request.
func NewFeedbackAPIClient(baseURL, token string, opts ...FeedbackAPIOption) *FeedbackAPIClient {
	fc := &FeedbackAPIClient{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     &http.Client{Timeout: feedbackAPIRequestTimeout},
		maxRetries:     MAX_RETRIES,
		initialBackoff: INITIAL_BACKOFF,
		maxBackoff:     MAX_BACKOFF,
	}
	for _, opt := range opts {
		opt(fc)
	}

	if token != "" {
		base := fc.httpClient
		fc.httpClient = &http.Client{
			Timeout: base.Timeout,
			Transport: &oauth2.Transport{
				Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
				Base:   base.Transport,
			},
		}
	}
	return fc
}

// Chat sends one chat message; the backend decides whether it is a question
// or new feedback.
func (fc *FeedbackAPIClient) Chat(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error) {
	var resp models.ChatResponse
	if strings.TrimSpace(req.Message) == "" {
		return resp, errors.New("[FeedbackAPIClient] message cannot be empty")
	}
	err := fc.postJSON(ctx, "/analyze/chat", req, &resp)
	return resp, err
}

func (fc *FeedbackAPIClient) AnalyzeText(ctx context.Context, req models.TextAnalysisRequest) (models.FeedbackAnalysis, error) {
	var resp models.FeedbackAnalysis
	if len(req.Reviews) == 0 {
		return resp, errors.New("[FeedbackAPIClient] no reviews provided")
	}
	err := fc.postJSON(ctx, "/analyze/text", req, &resp)
	return resp, err
}

// UploadCSV posts a CSV file as multipart form data.
func (fc *FeedbackAPIClient) UploadCSV(ctx context.Context, filename string, content []byte, conversationID string) (models.ChatResponse, error) {
	var resp models.ChatResponse
	if !strings.EqualFold(filepath.Ext(filename), ".csv") {
		return resp, errors.New("[FeedbackAPIClient] only CSV files are supported")
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return resp, fmt.Errorf("[FeedbackAPIClient] failed to create form file: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return resp, fmt.Errorf("[FeedbackAPIClient] failed to write form file: %w", err)
	}
	if conversationID != "" {
		if err := w.WriteField("conversation_id", conversationID); err != nil {
			return resp, fmt.Errorf("[FeedbackAPIClient] failed to write form field: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return resp, fmt.Errorf("[FeedbackAPIClient] failed to close form: %w", err)
	}

	err = fc.do(ctx, http.MethodPost, "/analyze/upload", body.Bytes(), w.FormDataContentType(), &resp)
	return resp, err
}

func (fc *FeedbackAPIClient) QuickSentiment(ctx context.Context, text string) (models.QuickSentimentResponse, error) {
	var resp models.QuickSentimentResponse
	if strings.TrimSpace(text) == "" {
		return resp, errors.New("[FeedbackAPIClient] text cannot be empty")
	}
	path := "/analyze/quick-sentiment?" + url.Values{"text": {text}}.Encode()
	err := fc.do(ctx, http.MethodGet, path, nil, "", &resp)
	return resp, err
}

func (fc *FeedbackAPIClient) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("[FeedbackAPIClient] failed to marshal request: %w", err)
	}
	return fc.do(ctx, http.MethodPost, path, body, "application/json", out)
}

// do sends the request, retrying 429 and 5xx responses and transport errors
// with exponential backoff.
func (fc *FeedbackAPIClient) do(ctx context.Context, method, path string, body []byte, contentType string, out any) error {
	backoff := fc.initialBackoff
	var lastErr error

	for attempt := 0; attempt <= fc.maxRetries; attempt++ {
		if attempt > 0 {
			slog.Warn("[FeedbackAPIClient] Retrying request",
				slog.String("path", path),
				slog.Int("attempt", attempt),
				slog.Duration("backoff", backoff),
				slog.String("error", lastErr.Error()))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, fc.maxBackoff)
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, fc.baseURL+path, reader)
		if err != nil {
			return fmt.Errorf("[FeedbackAPIClient] failed to build request: %w", err)
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", USER_AGENT)

		resp, err := fc.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			continue
		}

		retry, err := decodeResponse(resp, out)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("[FeedbackAPIClient] giving up after %d retries: %w", fc.maxRetries, lastErr)
}

func decodeResponse(resp *http.Response, out any) (bool, error) {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return true, fmt.Errorf("[FeedbackAPIClient] failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return true, &APIError{StatusCode: resp.StatusCode, Detail: errorDetail(data, resp.Status)}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return false, &APIError{StatusCode: resp.StatusCode, Detail: errorDetail(data, resp.Status)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("[FeedbackAPIClient] failed to decode response: %w", err)
	}
	return false, nil
}

func errorDetail(data []byte, fallback string) string {
	var body models.APIErrorBody
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Detail != "" {
			return body.Detail
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return fallback
}
