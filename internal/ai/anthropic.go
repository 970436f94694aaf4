package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	DefaultAnthropicEndpoint = "https://api.anthropic.com"
	DefaultAnthropicModel    = "claude-sonnet-4-5"
)

// AnthropicCompleter calls the Anthropic messages API.
type AnthropicCompleter struct {
	apiKey string
	model  string
	client anthropic.Client
}

// NewAnthropicCompleter creates a completer. Empty endpoint and model use
// the defaults. The SDK's own retries are disabled; Generator decides.
func NewAnthropicCompleter(apiKey, model, endpoint string) *AnthropicCompleter {
	if endpoint == "" {
		endpoint = DefaultAnthropicEndpoint
	}
	if model == "" {
		model = DefaultAnthropicModel
	}
	return &AnthropicCompleter{
		apiKey: apiKey,
		model:  model,
		client: anthropic.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(strings.TrimRight(endpoint, "/")+"/"),
			option.WithRequestTimeout(120*time.Second),
			option.WithMaxRetries(0),
		),
	}
}

// APIError is a non-2xx reply from the messages API.
type APIError struct {
	Status int
	Err    error
}

func (e *APIError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("anthropic API returned status %d", e.Status)
	}
	return fmt.Sprintf("anthropic API returned status %d: %v", e.Status, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

// StatusCode makes APIError visible to the retry classifier.
func (e *APIError) StatusCode() int { return e.Status }

func (c *AnthropicCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("anthropic API key not configured")
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(req.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(req.Temperature))
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", &APIError{Status: apiErr.StatusCode, Err: err}
		}
		return "", fmt.Errorf("failed to send request to anthropic API: %w", err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("anthropic returned non-text content")
	}
	if msg.StopReason == anthropic.StopReasonMaxTokens {
		log.Printf("WARN: anthropic response hit max_tokens (%d); JSON may be truncated", req.MaxTokens)
	}
	return text.String(), nil
}
