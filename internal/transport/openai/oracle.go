// Package openai implements the generative oracle over an OpenAI-compatible
// chat completions API.
package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/nexa-app/nexa/internal/domain"
	"github.com/nexa-app/nexa/internal/domain/draft"
	"github.com/nexa-app/nexa/internal/domain/recommend"
	"github.com/nexa-app/nexa/internal/metrics"
)

// Call names used as metric labels.
const (
	callSuggest  = "suggest"
	callDescribe = "describe"
)

// BreakerConfig holds circuit breaker settings.
type BreakerConfig struct {
	MaxRequests         uint32
	Interval            time.Duration
	Timeout             time.Duration
	ConsecutiveFailures uint32
}

// Config holds the oracle settings.
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Breaker   BreakerConfig
	Logger    *zap.Logger
}

// Oracle answers recommendation and image-description prompts.
type Oracle struct {
	client    *openai.Client
	model     string
	maxTokens int
	breaker   *gobreaker.CircuitBreaker[string]
	logger    *zap.Logger
}

// New creates an oracle client. An empty BaseURL uses the public OpenAI endpoint.
func New(cfg *Config) *Oracle {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	threshold := cfg.Breaker.ConsecutiveFailures
	if threshold == 0 {
		threshold = 5
	}
	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "oracle",
		MaxRequests: cfg.Breaker.MaxRequests,
		Interval:    cfg.Breaker.Interval,
		Timeout:     cfg.Breaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// Caller cancellations say nothing about the upstream.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Oracle circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Oracle{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		breaker:   breaker,
		logger:    logger,
	}
}

// Suggest asks for 3-5 recommendations for the prompt context.
func (o *Oracle) Suggest(ctx context.Context, p recommend.Prompt) ([]recommend.Suggestion, error) {
	text, err := o.complete(ctx, callSuggest, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: suggestPrompt(p)},
	})
	if err != nil {
		return nil, err
	}

	raw, err := extractJSON(text, '[', ']')
	if err != nil {
		metrics.OracleErrorsTotal.WithLabelValues(callSuggest, "malformed").Inc()
		return nil, err
	}
	var out []recommend.Suggestion
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		metrics.OracleErrorsTotal.WithLabelValues(callSuggest, "malformed").Inc()
		return nil, fmt.Errorf("decode suggestions: %w: %w", domain.ErrMalformedResponse, err)
	}
	return out, nil
}

// Describe drafts a listing from a base64-encoded JPEG.
func (o *Oracle) Describe(ctx context.Context, imageBase64 string) (draft.Draft, error) {
	if _, err := base64.StdEncoding.DecodeString(imageBase64); err != nil {
		return draft.Draft{}, fmt.Errorf("%w: image is not valid base64", domain.ErrInvalidInput)
	}

	text, err := o.complete(ctx, callDescribe, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: describeSystemPrompt},
		{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: describeUserText},
				{
					Type: openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{
						URL:    "data:image/jpeg;base64," + imageBase64,
						Detail: openai.ImageURLDetailAuto,
					},
				},
			},
		},
	})
	if err != nil {
		return draft.Draft{}, err
	}

	raw, err := extractJSON(text, '{', '}')
	if err != nil {
		metrics.OracleErrorsTotal.WithLabelValues(callDescribe, "malformed").Inc()
		return draft.Draft{}, err
	}
	var d draft.Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		metrics.OracleErrorsTotal.WithLabelValues(callDescribe, "malformed").Inc()
		return draft.Draft{}, fmt.Errorf("decode draft: %w: %w", domain.ErrMalformedResponse, err)
	}
	return d, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (o *Oracle) HealthCheck(ctx context.Context) error {
	if _, err := o.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// complete runs one chat completion through the breaker and returns the first choice's text.
func (o *Oracle) complete(ctx context.Context, call string, msgs []openai.ChatCompletionMessage) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: msgs,
	}
	if o.maxTokens > 0 {
		req.MaxTokens = o.maxTokens
	}

	start := time.Now()
	text, err := o.breaker.Execute(func() (string, error) {
		resp, err := o.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", errEmptyChoices
		}
		return resp.Choices[0].Message.Content, nil
	})
	duration := time.Since(start)

	if err != nil {
		metrics.OracleRequestsTotal.WithLabelValues(call, o.model, "error").Inc()
		metrics.OracleErrorsTotal.WithLabelValues(call, errorType(err)).Inc()
		return "", parseAPIError(err)
	}

	metrics.OracleRequestsTotal.WithLabelValues(call, o.model, "success").Inc()
	metrics.OracleRequestDuration.WithLabelValues(call, o.model).Observe(duration.Seconds())
	o.logger.Debug("Oracle call completed",
		zap.String("call", call),
		zap.Duration("duration", duration),
		zap.Int("response_chars", len(text)),
	)
	return text, nil
}

var errEmptyChoices = errors.New("empty completion choices")

func errorType(err error) string {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "circuit_open"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, errEmptyChoices):
		return "empty_response"
	default:
		return "api_error"
	}
}

// extractJSON returns the text between the first open and the last close
// delimiter, inclusive. Models often wrap JSON in prose or code fences.
func extractJSON(text string, open, closing byte) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty response", domain.ErrMalformedResponse)
	}
	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, closing)
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("%w: no JSON found in response", domain.ErrMalformedResponse)
	}
	return text[start : end+1], nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrOracle.
func parseAPIError(err error) error {
	wrap := domain.ErrOracle

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("oracle unavailable: %w: %w", err, wrap)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("oracle API error %d: %s: %w", reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("oracle API error %d: %s: %w", reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("oracle API error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("oracle request failed: %w: %w", err, wrap)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
