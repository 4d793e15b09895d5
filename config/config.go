package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultFeeds are the SEO and CMS news sources used for fresh context.
var DefaultFeeds = []string{
	"https://wordpress.org/news/feed/",
	"https://developers.google.com/search/blog/rss.xml",
	"https://www.searchenginejournal.com/feed/",
	"https://www.searchenginewatch.com/feed/",
}

type Config struct {
	Port     string
	LogLevel string

	TextProvider string
	TextTimeout  time.Duration
	Ollama       OllamaConfig
	Cohere       CohereConfig
	OpenAI       OpenAIConfig
	FreshData    FreshDataConfig
	Storage      StorageConfig
	Kafka        KafkaConfig

	CORSOrigins []string
}

type OllamaConfig struct {
	BaseURL  string
	Model    string
	Username string
	Password string
}

type CohereConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey     string
	BaseURL    string
	ImageModel string
	Timeout    time.Duration
}

type FreshDataConfig struct {
	Feeds            []string
	MaxPerFeed       int
	MaxContextChars  int
	FeedTimeout      time.Duration
	ExtractSummaries bool
}

// StorageConfig enables featured image re-hosting when Bucket is set.
type StorageConfig struct {
	Bucket        string
	Region        string
	Profile       string
	Prefix        string
	UsePathStyle  bool
	PublicBaseURL string
	PresignTTL    time.Duration
}

type KafkaConfig struct {
	Brokers      []string
	RequestTopic string
	ResultTopic  string
	GroupID      string
}

// Load reads configuration from the environment. Call godotenv first if a
// .env file should be honoured.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Port:         v.GetString("PORT"),
		LogLevel:     v.GetString("LOG_LEVEL"),
		TextProvider: strings.ToLower(strings.TrimSpace(v.GetString("TEXT_PROVIDER"))),
		TextTimeout:  v.GetDuration("TEXT_TIMEOUT"),
		Ollama: OllamaConfig{
			BaseURL:  strings.TrimRight(v.GetString("OLLAMA_BASE_URL"), "/"),
			Model:    v.GetString("OLLAMA_MODEL"),
			Username: v.GetString("OLLAMA_USERNAME"),
			Password: v.GetString("OLLAMA_PASSWORD"),
		},
		Cohere: CohereConfig{
			APIKey: v.GetString("COHERE_API_KEY"),
			Model:  v.GetString("COHERE_MODEL"),
		},
		OpenAI: OpenAIConfig{
			APIKey:     v.GetString("OPENAI_API_KEY"),
			BaseURL:    v.GetString("OPENAI_BASE_URL"),
			ImageModel: v.GetString("IMAGE_MODEL"),
			Timeout:    v.GetDuration("IMAGE_TIMEOUT"),
		},
		FreshData: FreshDataConfig{
			Feeds:            splitList(v.GetString("FRESH_FEEDS")),
			MaxPerFeed:       v.GetInt("FRESH_MAX_PER_FEED"),
			MaxContextChars:  v.GetInt("FRESH_MAX_CHARS"),
			FeedTimeout:      v.GetDuration("FEED_TIMEOUT"),
			ExtractSummaries: v.GetBool("FRESH_EXTRACT_SUMMARIES"),
		},
		Storage: StorageConfig{
			Bucket:        v.GetString("S3_BUCKET"),
			Region:        v.GetString("S3_REGION"),
			Profile:       v.GetString("S3_PROFILE"),
			Prefix:        v.GetString("S3_PREFIX"),
			UsePathStyle:  v.GetBool("S3_USE_PATH_STYLE"),
			PublicBaseURL: strings.TrimRight(v.GetString("S3_PUBLIC_BASE_URL"), "/"),
			PresignTTL:    v.GetDuration("S3_PRESIGN_TTL"),
		},
		Kafka: KafkaConfig{
			Brokers:      splitList(v.GetString("KAFKA_BOOTSTRAP_SERVERS")),
			RequestTopic: v.GetString("KAFKA_TOPIC_GENERATION_REQUESTS"),
			ResultTopic:  v.GetString("KAFKA_TOPIC_GENERATION_RESULTS"),
			GroupID:      v.GetString("KAFKA_CONSUMER_GROUP_ID"),
		},
		CORSOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if len(cfg.FreshData.Feeds) == 0 {
		cfg.FreshData.Feeds = append([]string(nil), DefaultFeeds...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", DefaultPort)
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("TEXT_PROVIDER", ProviderOllama)
	v.SetDefault("TEXT_TIMEOUT", DefaultTextTimeout)
	v.SetDefault("OLLAMA_BASE_URL", DefaultOllamaBaseURL)
	v.SetDefault("OLLAMA_MODEL", DefaultOllamaModel)
	v.SetDefault("OLLAMA_USERNAME", "")
	v.SetDefault("OLLAMA_PASSWORD", "")
	v.SetDefault("COHERE_API_KEY", "")
	v.SetDefault("COHERE_MODEL", DefaultCohereModel)
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_BASE_URL", "")
	v.SetDefault("IMAGE_MODEL", DefaultImageModel)
	v.SetDefault("IMAGE_TIMEOUT", DefaultImageTimeout)
	v.SetDefault("FRESH_FEEDS", "")
	v.SetDefault("FRESH_MAX_PER_FEED", DefaultMaxPerFeed)
	v.SetDefault("FRESH_MAX_CHARS", DefaultMaxContextChars)
	v.SetDefault("FEED_TIMEOUT", DefaultFeedTimeout)
	v.SetDefault("FRESH_EXTRACT_SUMMARIES", false)
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_REGION", "")
	v.SetDefault("S3_PROFILE", "")
	v.SetDefault("S3_PREFIX", DefaultS3Prefix)
	v.SetDefault("S3_USE_PATH_STYLE", false)
	v.SetDefault("S3_PUBLIC_BASE_URL", "")
	v.SetDefault("S3_PRESIGN_TTL", DefaultPresignTTL)
	v.SetDefault("KAFKA_BOOTSTRAP_SERVERS", "localhost:9092")
	v.SetDefault("KAFKA_TOPIC_GENERATION_REQUESTS", DefaultRequestTopic)
	v.SetDefault("KAFKA_TOPIC_GENERATION_RESULTS", DefaultResultTopic)
	v.SetDefault("KAFKA_CONSUMER_GROUP_ID", DefaultGroupID)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

// Validate rejects values that would make every request fail.
func (c *Config) Validate() error {
	switch c.TextProvider {
	case ProviderOllama:
		if c.Ollama.BaseURL == "" {
			return fmt.Errorf("OLLAMA_BASE_URL must not be empty")
		}
	case ProviderCohere:
		if c.Cohere.APIKey == "" {
			return fmt.Errorf("COHERE_API_KEY is required when TEXT_PROVIDER=cohere")
		}
	default:
		return fmt.Errorf("unknown TEXT_PROVIDER %q (want %s or %s)", c.TextProvider, ProviderOllama, ProviderCohere)
	}
	if c.TextTimeout <= 0 {
		return fmt.Errorf("TEXT_TIMEOUT must be positive, got %s", c.TextTimeout)
	}
	if c.FreshData.MaxPerFeed <= 0 {
		return fmt.Errorf("FRESH_MAX_PER_FEED must be positive, got %d", c.FreshData.MaxPerFeed)
	}
	if c.FreshData.MaxContextChars <= 0 {
		return fmt.Errorf("FRESH_MAX_CHARS must be positive, got %d", c.FreshData.MaxContextChars)
	}
	return nil
}

// TestConfig returns a configuration that never reaches the network by default.
func TestConfig() *Config {
	return &Config{
		Port:         DefaultPort,
		LogLevel:     "OFF",
		TextProvider: ProviderOllama,
		TextTimeout:  5 * time.Second,
		Ollama: OllamaConfig{
			BaseURL: "http://127.0.0.1:0",
			Model:   "test-model",
		},
		OpenAI: OpenAIConfig{
			APIKey:     "test-key",
			ImageModel: DefaultImageModel,
			Timeout:    5 * time.Second,
		},
		FreshData: FreshDataConfig{
			MaxPerFeed:      DefaultMaxPerFeed,
			MaxContextChars: DefaultMaxContextChars,
			FeedTimeout:     time.Second,
		},
		Kafka: KafkaConfig{
			RequestTopic: DefaultRequestTopic,
			ResultTopic:  DefaultResultTopic,
			GroupID:      DefaultGroupID,
		},
		CORSOrigins: []string{"*"},
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
