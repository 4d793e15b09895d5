// Package imagegen produces featured images: a text model rewrites the
// description, then the OpenAI image API renders it.
package imagegen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"contentpilot/config"
	"contentpilot/logging"
	"contentpilot/metrics"
	"contentpilot/prompts"
	"contentpilot/textgen"

	openai "github.com/sashabaranov/go-openai"
)

var ErrImageFailed = errors.New("image generation failed")

const (
	enhanceTemperature = 0.7
	enhanceMaxTokens   = 300
)

type Config struct {
	APIKey string
	// BaseURL overrides the OpenAI endpoint, including the /v1 suffix.
	BaseURL string
	Model   string
	Timeout time.Duration
}

type Client struct {
	images  *openai.Client
	text    textgen.Generator
	model   string
	hasKey  bool
	timeout time.Duration
}

// NewClient builds an image client. text is used for prompt enhancement.
func NewClient(cfg Config, text textgen.Generator) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultImageTimeout
	}
	model := cfg.Model
	if model == "" {
		model = config.DefaultImageModel
	}

	oaCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oaCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	oaCfg.HTTPClient = &http.Client{Timeout: timeout}

	return &Client{
		images:  openai.NewClientWithConfig(oaCfg),
		text:    text,
		model:   model,
		hasKey:  cfg.APIKey != "",
		timeout: timeout,
	}
}

// EnhancePrompt never fails: any problem returns the basic description.
func (c *Client) EnhancePrompt(ctx context.Context, basic string) string {
	p, err := prompts.Build(prompts.KindImageEnhancement, prompts.Params{Text: basic})
	if err != nil {
		logging.Warnf("image prompt enhancement skipped: %v", err)
		metrics.ImageFallbacksTotal.WithLabelValues("enhance").Inc()
		return basic
	}

	enhanced, err := c.text.Generate(ctx, textgen.Request{
		Prompt:      p.User,
		Temperature: enhanceTemperature,
		MaxTokens:   enhanceMaxTokens,
	})
	if err != nil {
		logging.Warnf("image prompt enhancement failed, using basic prompt: %v", err)
		metrics.ImageFallbacksTotal.WithLabelValues("enhance").Inc()
		return basic
	}
	enhanced = strings.TrimSpace(enhanced)
	if enhanced == "" {
		metrics.ImageFallbacksTotal.WithLabelValues("enhance").Inc()
		return basic
	}
	logging.Debugf("image prompt enhanced: %d -> %d characters", len(basic), len(enhanced))
	return enhanced
}

// GenerateImage renders one 1024x1024 image and returns its URL.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if !c.hasKey {
		return "", fmt.Errorf("%w: OPENAI_API_KEY is not configured", ErrImageFailed)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.images.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          c.model,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	metrics.BackendRequestDuration.WithLabelValues("openai_images", metrics.Status(err)).Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageFailed, err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("%w: response contained no image URL", ErrImageFailed)
	}
	return resp.Data[0].URL, nil
}

// FeaturedImage enhances the description and renders it.
func (c *Client) FeaturedImage(ctx context.Context, basic string) (string, error) {
	return c.GenerateImage(ctx, c.EnhancePrompt(ctx, basic))
}
