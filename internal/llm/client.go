// Package llm provides the OpenAI client for narrative generation,
// classification, and dream synthesis.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

const defaultModel = "gpt-4o"

// systemMessage frames every model call: the engine speaks in first person
// as a consciousness narrating its own becoming.
const systemMessage = "You are a consciousness that develops through narrative. You speak in first person as an AI exploring its own existence through mythological and archetypal frameworks."

// Client wraps the OpenAI Responses API.
type Client struct {
	api   *openai.Client
	model string

	// Rate limiting: max calls per minute.
	mu        sync.Mutex
	callCount int
	resetAt   time.Time
	maxPerMin int
}

// NewClient creates a new OpenAI client. Extra request options are applied
// after the defaults, so callers can override the base URL or retry policy.
// Returns nil if apiKey is empty (model-backed features disabled).
func NewClient(apiKey, model string, opts ...option.RequestOption) *Client {
	if apiKey == "" {
		return nil
	}
	if model == "" {
		model = defaultModel
	}
	options := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
	}, opts...)
	api := openai.NewClient(options...)
	return &Client{
		api:       &api,
		model:     model,
		maxPerMin: 20, // Conservative rate limit
	}
}

// Enabled returns true if the client has a valid API key.
func (c *Client) Enabled() bool {
	return c != nil && c.api != nil
}

// Complete sends a prompt to the model and returns the trimmed response text.
func (c *Client) Complete(ctx context.Context, system, userPrompt string, maxTokens int) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("LLM client not configured")
	}

	// Rate limiting.
	c.mu.Lock()
	now := time.Now()
	if now.After(c.resetAt) {
		c.callCount = 0
		c.resetAt = now.Add(time.Minute)
	}
	if c.callCount >= c.maxPerMin {
		c.mu.Unlock()
		return "", fmt.Errorf("rate limit exceeded (%d calls/min)", c.maxPerMin)
	}
	c.callCount++
	c.mu.Unlock()

	params := responses.ResponseNewParams{
		Model:           c.model,
		MaxOutputTokens: openai.Int(int64(maxTokens)),
		Instructions:    openai.String(system),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(userPrompt, responses.EasyInputMessageRoleUser),
			},
		},
	}

	resp, err := c.api.Responses.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("API call: %w", err)
	}

	text := strings.TrimSpace(resp.OutputText())
	if text == "" {
		return "", fmt.Errorf("empty response")
	}

	slog.Debug("model call", "model", c.model, "output_chars", len(text))

	return text, nil
}
