package textgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"contentpilot/config"
	"contentpilot/logging"
	"contentpilot/metrics"
)

// OllamaConfig is everything the client needs; nothing is read from the
// environment.
type OllamaConfig struct {
	BaseURL  string
	Model    string
	Username string
	Password string
	Timeout  time.Duration
}

// OllamaClient calls a self-hosted Ollama server's generate endpoint.
type OllamaClient struct {
	baseURL    string
	model      string
	username   string
	password   string
	timeout    time.Duration
	httpClient *http.Client
}

func NewOllamaClient(cfg OllamaConfig) *OllamaClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTextTimeout
	}
	return &OllamaClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		username:   cfg.Username,
		password:   cfg.Password,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Stream      bool    `json:"stream"`
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type generateResponse struct {
	Response  *string `json:"response"`
	EvalCount int     `json:"eval_count"`
}

// Generate sends one non-streaming completion request.
func (c *OllamaClient) Generate(ctx context.Context, req Request) (string, error) {
	start := time.Now()
	text, err := c.generate(ctx, req)
	metrics.BackendRequestDuration.WithLabelValues("ollama", metrics.Status(err)).Observe(time.Since(start).Seconds())
	return text, err
}

func (c *OllamaClient) generate(ctx context.Context, req Request) (string, error) {
	prompt := req.Prompt
	if req.System != "" {
		prompt = req.System + "\n\n" + req.Prompt
	}

	payload, err := json.Marshal(generateRequest{
		Model:       c.model,
		Prompt:      prompt,
		Stream:      false,
		Temperature: req.Temperature,
		NumPredict:  req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal request: %v", ErrGenerationFailed, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrGenerationFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.password != "" {
		httpReq.SetBasicAuth(c.username, c.password)
	}

	logging.Debugf("ollama request: model=%s prompt_chars=%d max_tokens=%d", c.model, len(prompt), req.MaxTokens)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w: ollama API timeout after %s", ErrGenerationFailed, c.timeout)
		}
		return "", fmt.Errorf("%w: failed to reach ollama: %v", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("%w: ollama returned %d: %s", ErrGenerationFailed, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w: ollama API timeout after %s", ErrGenerationFailed, c.timeout)
		}
		return "", fmt.Errorf("%w: failed to decode ollama response: %v", ErrGenerationFailed, err)
	}
	if out.Response == nil {
		return "", fmt.Errorf("%w: ollama response has no \"response\" field", ErrGenerationFailed)
	}

	logging.Debugf("ollama generated %d tokens", out.EvalCount)
	return strings.TrimSpace(*out.Response), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
