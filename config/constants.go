package config

import "time"

// Text generation defaults
const (
	DefaultOllamaBaseURL = "http://localhost:11434"
	DefaultOllamaModel   = "qwen2.5:7b"
	DefaultCohereModel   = "command-r"

	// DefaultTextTimeout bounds one text generation call on any provider
	DefaultTextTimeout = 300 * time.Second

	ProviderOllama = "ollama"
	ProviderCohere = "cohere"
)

// Image generation defaults
const (
	DefaultImageModel   = "dall-e-3"
	DefaultImageTimeout = 120 * time.Second
)

// Fresh data defaults
const (
	// DefaultMaxPerFeed caps entries taken from each feed source
	DefaultMaxPerFeed = 5

	// DefaultMaxContextChars bounds the recent-data block given to the model
	DefaultMaxContextChars = 800

	DefaultFeedTimeout = 30 * time.Second
)

// Storage defaults
const (
	DefaultS3Prefix   = "contentpilot/"
	DefaultPresignTTL = 7 * 24 * time.Hour
)

// Kafka defaults
const (
	DefaultRequestTopic = "blog-generation-requests"
	DefaultResultTopic  = "blog-generation-results"
	DefaultGroupID      = "contentpilot-generation"
)

const DefaultPort = "8000"
