package ai

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"anvilwp_server/internal/ai/prompts"
	"anvilwp_server/internal/errs"
	"anvilwp_server/internal/utils"
)

// CompletionRequest is a single-turn chat completion.
type CompletionRequest struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float32
}

// Completer sends one completion request to an LLM provider and returns the
// text of its reply.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Generator asks an LLM for theme content JSON.
type Generator struct {
	completer  Completer
	strategy   prompts.Strategy
	maxTokens  int
	retry      bool
	retryDelay time.Duration
}

// Option configures a Generator.
type Option func(*Generator)

// WithRetry makes the Generator retry a transient failure once, after
// delay. Without it every failure is returned to the caller as is.
func WithRetry(delay time.Duration) Option {
	return func(g *Generator) {
		g.retry = true
		g.retryDelay = delay
	}
}

func NewGenerator(completer Completer, strategy prompts.Strategy, maxTokens int, opts ...Option) *Generator {
	if maxTokens <= 0 {
		maxTokens = 8192
	}
	if strategy == "" {
		strategy = prompts.Expanded
	}
	g := &Generator{
		completer: completer,
		strategy:  strategy,
		maxTokens: maxTokens,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Strategy is the prompt strategy in use.
func (g *Generator) Strategy() prompts.Strategy { return g.strategy }

// GenerateThemeContent returns the JSON object extracted from the LLM reply
// to userMessage. Transport failures, empty replies and replies without a
// JSON object are UpstreamGenerationErrors.
func (g *Generator) GenerateThemeContent(ctx context.Context, generationID, userMessage string) ([]byte, error) {
	if strings.TrimSpace(userMessage) == "" {
		return nil, &errs.ValidationError{Fields: map[string]string{"userMessage": "cannot be blank"}}
	}
	if g.completer == nil {
		return nil, errs.Upstream("no LLM provider configured", nil)
	}

	req := CompletionRequest{
		System:      prompts.SystemPrompt,
		Prompt:      prompts.ThemeContent(g.strategy, userMessage),
		MaxTokens:   g.maxTokens,
		Temperature: 0.7,
	}

	llmOutput, err := g.completer.Complete(ctx, req)
	if err != nil && g.retry && utils.ShouldRetry(err) {
		log.Printf("WARN: LLM call for generation %s failed, retrying once after %s: %v", generationID, g.retryDelay, err)
		select {
		case <-ctx.Done():
			return nil, errs.Upstream("LLM request cancelled", errors.Join(err, ctx.Err()))
		case <-time.After(g.retryDelay):
		}
		llmOutput, err = g.completer.Complete(ctx, req)
	}
	if err != nil {
		return nil, errs.Upstream("LLM request failed", err)
	}
	if strings.TrimSpace(llmOutput) == "" {
		return nil, errs.Upstream("LLM returned an empty response", nil)
	}
	log.Printf("Info: LLM raw output for generation %s (%s strategy): %s", generationID, g.strategy, llmOutput)

	obj, ok := ExtractJSON(llmOutput)
	if !ok {
		return nil, errs.Upstream("no JSON object found in LLM response", nil)
	}
	return []byte(obj), nil
}

// ExtractJSON strips markdown fences and returns the text from the first
// '{' to the last '}'.
func ExtractJSON(text string) (string, bool) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end < start {
		return "", false
	}
	return cleaned[start : end+1], true
}
