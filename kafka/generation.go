package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"contentpilot/content"
	"contentpilot/logging"
	"contentpilot/types"

	"github.com/google/uuid"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Generator is the subset of the content service the queue worker drives.
type Generator interface {
	SuggestKeywords(ctx context.Context, products, posts []string) (types.KeywordSuggestions, error)
	GenerateDetailedBlog(ctx context.Context, keyword string, extra map[string]any) (types.DetailedBlog, error)
	GenerateContent(ctx context.Context, prompt string) (types.ContentResponse, error)
	GenerateBlogWithImage(ctx context.Context, prompt string) (types.GeneratedBlog, error)
	GenerateKeywordPlan(ctx context.Context, businessInfo string) (string, error)
	GenerateOutline(ctx context.Context, keyword string) (types.OutlineResponse, error)
	GenerateSEOMeta(ctx context.Context, keyword string) (types.SEOMetaResult, error)
}

// GenerationRequest asks for one content operation.
type GenerationRequest struct {
	UUID      string         `json:"uuid"`
	Operation string         `json:"operation"`
	Keyword   string         `json:"keyword,omitempty"`
	Prompt    string         `json:"prompt,omitempty"`
	Context   map[string]any `json:"context,omitempty"`
	Products  []string       `json:"products,omitempty"`
	Posts     []string       `json:"posts,omitempty"`
}

// GenerationResult carries the outcome of a GenerationRequest. Result is the
// same JSON body the HTTP route would have returned.
type GenerationResult struct {
	UUID      string          `json:"uuid"`
	Operation string          `json:"operation"`
	Status    string          `json:"status"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     *string         `json:"error,omitempty"`
}

// NewGenerationHandler runs each request once and publishes its result.
// Failures become error results, so every message is marked.
func NewGenerationHandler(gen Generator, pub Publisher) *TypedMessageHandler[GenerationRequest] {
	return &TypedMessageHandler[GenerationRequest]{
		Validate: func(req *GenerationRequest) bool {
			if strings.TrimSpace(req.Operation) == "" {
				logging.Warnf("dropping generation request without operation")
				return false
			}
			if req.UUID == "" {
				req.UUID = uuid.NewString()
			}
			return true
		},
		Process: func(ctx context.Context, req *GenerationRequest) error {
			res := Run(ctx, gen, req)
			if err := pub.Publish(ctx, res.UUID, res); err != nil {
				logging.Errorf("failed to publish result for %s: %v", res.UUID, err)
			}
			return nil
		},
		AlwaysMark: true,
	}
}

// Run executes req against gen and never returns a nil result.
func Run(ctx context.Context, gen Generator, req *GenerationRequest) GenerationResult {
	res := GenerationResult{UUID: req.UUID, Operation: req.Operation}
	log := logging.WithFields(logging.Fields{"uuid": req.UUID, "operation": req.Operation})

	out, err := dispatch(ctx, gen, req)
	if err == nil {
		res.Result, err = json.Marshal(out)
	}
	if err != nil {
		msg := err.Error()
		res.Status = StatusError
		res.Error = &msg
		log.Warnf("generation failed: %v", err)
		return res
	}
	res.Status = StatusSuccess
	log.Infof("generation completed")
	return res
}

func dispatch(ctx context.Context, gen Generator, req *GenerationRequest) (any, error) {
	switch req.Operation {
	case content.OpSuggestKeywords:
		out, err := gen.SuggestKeywords(ctx, req.Products, req.Posts)
		if err != nil {
			return nil, err
		}
		return map[string]any{"keywords": out}, nil
	case content.OpDetailedBlog:
		if req.Keyword == "" {
			return nil, fmt.Errorf("keyword is required")
		}
		return gen.GenerateDetailedBlog(ctx, req.Keyword, req.Context)
	case content.OpBlogWithImage:
		if req.Prompt == "" {
			return nil, fmt.Errorf("prompt is required")
		}
		return gen.GenerateBlogWithImage(ctx, req.Prompt)
	case content.OpContent:
		if req.Prompt == "" {
			return nil, fmt.Errorf("prompt is required")
		}
		return gen.GenerateContent(ctx, req.Prompt)
	case content.OpKeywordPlan:
		if req.Prompt == "" {
			return nil, fmt.Errorf("prompt is required")
		}
		return gen.GenerateKeywordPlan(ctx, req.Prompt)
	case content.OpOutline:
		if req.Keyword == "" {
			return nil, fmt.Errorf("keyword is required")
		}
		return gen.GenerateOutline(ctx, req.Keyword)
	case content.OpSEOMeta:
		if req.Keyword == "" {
			return nil, fmt.Errorf("keyword is required")
		}
		return gen.GenerateSEOMeta(ctx, req.Keyword)
	default:
		return nil, fmt.Errorf("unknown operation %q", req.Operation)
	}
}

// WorkerConfig wires the queue worker.
type WorkerConfig struct {
	Brokers      []string
	RequestTopic string
	ResultTopic  string
	GroupID      string
	Generator    Generator
}

// StartWorkerWithGracefulShutdown consumes requests until SIGINT or SIGTERM.
func StartWorkerWithGracefulShutdown(cfg WorkerConfig) error {
	producer, err := NewProducer(cfg.Brokers, cfg.ResultTopic)
	if err != nil {
		return err
	}
	defer producer.Close()

	consumer, err := NewConsumer(ConsumerConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.RequestTopic,
		GroupID: cfg.GroupID,
		Handler: NewGenerationHandler(cfg.Generator, producer),
	})
	if err != nil {
		return fmt.Errorf("failed to create kafka consumer: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start kafka consumer: %w", err)
	}
	logging.Infof("generation worker listening on %s, publishing to %s", cfg.RequestTopic, cfg.ResultTopic)

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGINT, syscall.SIGTERM)
	<-sigterm

	logging.Infof("shutting down generation worker")
	cancel()
	time.Sleep(2 * time.Second)

	return consumer.Close()
}
