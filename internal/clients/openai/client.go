package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/yungbote/capstone-backend/internal/logger"
	"github.com/yungbote/capstone-backend/internal/pkg/httpx"
)

// Client produces a JSON object from a system/user prompt pair. Rate-limited
// calls are retried with exponential backoff; exhaustion surfaces the last
// provider error. Responses are returned raw so callers own shape validation.
type Client interface {
	GenerateJSON(ctx context.Context, system, user string) (json.RawMessage, error)
}

type client struct {
	log   *logger.Logger
	api   *openai.Client
	model string
	retry httpx.RetryPolicy
}

// NewClient builds the single process-wide completion client. It is
// constructed once at startup and passed by reference to request handlers.
func NewClient(log *logger.Logger) (Client, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = openai.GPT4o
	}

	timeoutSec := 120
	if v := os.Getenv("OPENAI_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: time.Duration(timeoutSec) * time.Second}

	clientLog := log.With("client", "OpenAIClient")
	return &client{
		log:   clientLog,
		api:   openai.NewClientWithConfig(cfg),
		model: model,
		retry: httpx.RetryPolicy{
			MaxAttempts: 3,
			BaseDelay:   1 * time.Second,
			Retryable:   isRateLimited,
			OnRetry: func(attempt int, sleep time.Duration, err error) {
				clientLog.Warn("OpenAI request rate limited, retrying",
					"attempt", attempt,
					"sleep", sleep.String(),
					"error", err.Error(),
				)
			},
		},
	}, nil
}

func (c *client) GenerateJSON(ctx context.Context, system, user string) (json.RawMessage, error) {
	var content string
	err := c.retry.Do(ctx, func() error {
		resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
			Temperature: 0.7,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
			return fmt.Errorf("empty response from OpenAI")
		}
		content = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(content), nil
}

func isRateLimited(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	return false
}
