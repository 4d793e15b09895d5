package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"contentpilot/types"
)

// generationTimeout covers a full blog plus image round trip.
const generationTimeout = 10 * time.Minute

// APIClient is a thin HTTP client for the ContentPilot API.
type APIClient struct {
	baseURL string
	client  *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: generationTimeout},
	}
}

// Health reports whether the API answers its health check.
func (c *APIClient) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach api: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

// GenerateDetailedBlog asks for a blog on keyword and decodes the nested
// blog document.
func (c *APIClient) GenerateDetailedBlog(ctx context.Context, keyword string) (*BlogResult, error) {
	payload, err := json.Marshal(map[string]string{"keyword": keyword})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ai/generate-detailed-blog", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var detailed types.DetailedBlog
	if err := json.NewDecoder(resp.Body).Decode(&detailed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var blog types.GeneratedBlog
	if err := json.Unmarshal([]byte(detailed.Blog), &blog); err != nil {
		return nil, fmt.Errorf("failed to decode blog document: %w", err)
	}
	return &BlogResult{Keyword: detailed.Keyword, Blog: blog}, nil
}
