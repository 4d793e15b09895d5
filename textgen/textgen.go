// Package textgen talks to text generation backends.
package textgen

import (
	"context"
	"errors"

	"contentpilot/metrics"
	"contentpilot/structured"
)

// ErrGenerationFailed wraps every backend failure: timeouts, transport
// errors, non-success statuses and malformed response envelopes.
var ErrGenerationFailed = errors.New("text generation failed")

// Request is a single completion call.
type Request struct {
	Prompt      string
	System      string
	Temperature float64
	MaxTokens   int
}

// Generator produces plain text for a request. One call is one attempt.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GenerateStructured runs a completion and normalizes the output. Only
// backend failures are errors; unparseable text is a RawFallback.
func GenerateStructured(ctx context.Context, g Generator, req Request) (structured.Result, error) {
	text, err := g.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	res := structured.Normalize(text)
	if _, raw := res.(structured.RawFallback); raw {
		metrics.StructuredFallbacksTotal.Inc()
	}
	return res, nil
}
