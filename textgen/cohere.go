package textgen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"contentpilot/config"
	"contentpilot/logging"
	"contentpilot/metrics"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
	"github.com/cohere-ai/cohere-go/v2/option"
)

type CohereConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
	// BaseURL overrides the API host, mainly for tests.
	BaseURL string
}

// CohereClient is a hosted alternative to Ollama with the same contract.
type CohereClient struct {
	client  *cohereclient.Client
	model   string
	timeout time.Duration
}

func NewCohereClient(cfg CohereConfig) *CohereClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTextTimeout
	}
	model := cfg.Model
	if model == "" {
		model = config.DefaultCohereModel
	}

	client := cohereclient.NewClient(cohereclient.WithToken(cfg.APIKey))
	if cfg.BaseURL != "" {
		client = cohereclient.NewClient(
			cohereclient.WithToken(cfg.APIKey),
			cohereclient.WithBaseURL(cfg.BaseURL),
		)
	}
	return &CohereClient{
		client:  client,
		model:   model,
		timeout: timeout,
	}
}

// Generate sends the system text as the chat preamble.
func (c *CohereClient) Generate(ctx context.Context, req Request) (string, error) {
	start := time.Now()
	text, err := c.generate(ctx, req)
	metrics.BackendRequestDuration.WithLabelValues("cohere", metrics.Status(err)).Observe(time.Since(start).Seconds())
	return text, err
}

func (c *CohereClient) generate(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	model := c.model
	temperature := req.Temperature
	chatReq := &cohere.ChatRequest{
		Message:     req.Prompt,
		Model:       &model,
		Temperature: &temperature,
	}
	if req.MaxTokens > 0 {
		maxTokens := req.MaxTokens
		chatReq.MaxTokens = &maxTokens
	}
	if req.System != "" {
		preamble := req.System
		chatReq.Preamble = &preamble
	}

	// The SDK retries 5xx by default; one call is one attempt here.
	resp, err := c.client.Chat(ctx, chatReq, option.WithMaxAttempts(1))
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w: cohere API timeout after %s", ErrGenerationFailed, c.timeout)
		}
		return "", fmt.Errorf("%w: cohere chat error: %v", ErrGenerationFailed, err)
	}
	if resp == nil {
		return "", fmt.Errorf("%w: cohere chat returned empty response", ErrGenerationFailed)
	}

	logging.Debugf("cohere generated %d characters", len(resp.Text))
	return strings.TrimSpace(resp.Text), nil
}
