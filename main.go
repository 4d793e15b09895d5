package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"

	"contentpilot/api"
	"contentpilot/config"
	"contentpilot/content"
	"contentpilot/imagegen"
	"contentpilot/kafka"
	"contentpilot/logging"
	"contentpilot/rssfeeds"
	"contentpilot/storage"
	"contentpilot/textgen"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	port := flag.String("port", cfg.Port, "HTTP listen port")
	worker := flag.Bool("kafka", false, "consume generation requests from Kafka instead of serving HTTP")
	flag.Parse()

	logging.Setup(logging.ParseLevel(cfg.LogLevel), os.Stderr)

	svc, fetcher := buildService(cfg)

	if *worker {
		if len(cfg.Kafka.Brokers) == 0 {
			log.Fatalf("kafka mode requires KAFKA_BOOTSTRAP_SERVERS")
		}
		err := kafka.StartWorkerWithGracefulShutdown(kafka.WorkerConfig{
			Brokers:      cfg.Kafka.Brokers,
			RequestTopic: cfg.Kafka.RequestTopic,
			ResultTopic:  cfg.Kafka.ResultTopic,
			GroupID:      cfg.Kafka.GroupID,
			Generator:    svc,
		})
		if err != nil {
			log.Fatalf("generation worker error: %v", err)
		}
		return
	}

	r := api.NewRouter(api.Deps{
		Content:         svc,
		Articles:        fetcher,
		MaxPerFeed:      cfg.FreshData.MaxPerFeed,
		MaxContextChars: cfg.FreshData.MaxContextChars,
		CORSOrigins:     cfg.CORSOrigins,
	})

	addr := ":" + *port
	log.Printf("Starting ContentPilot API on %s (text provider: %s)", addr, cfg.TextProvider)
	log.Println("API endpoints available:")
	log.Println("  GET  /")
	log.Println("  GET  /api/health")
	log.Println("  GET  /metrics")
	log.Println("  POST /ai/suggest-keywords")
	log.Println("  POST /ai/generate-detailed-blog")
	log.Println("  POST /ai/generate")
	log.Println("  POST /ai/generate-blog")
	log.Println("  POST /ai/keyword-plan")
	log.Println("  POST /ai/outline")
	log.Println("  POST /ai/seo-meta")
	log.Println("  POST /keywords/process")
	log.Println("  GET  /api/rss/articles")
	log.Println("  GET  /api/rss/context")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func buildService(cfg *config.Config) (*content.Service, *rssfeeds.Fetcher) {
	var text textgen.Generator
	switch cfg.TextProvider {
	case config.ProviderCohere:
		text = textgen.NewCohereClient(textgen.CohereConfig{
			APIKey:  cfg.Cohere.APIKey,
			Model:   cfg.Cohere.Model,
			Timeout: cfg.TextTimeout,
		})
	default:
		text = textgen.NewOllamaClient(textgen.OllamaConfig{
			BaseURL:  cfg.Ollama.BaseURL,
			Model:    cfg.Ollama.Model,
			Username: cfg.Ollama.Username,
			Password: cfg.Ollama.Password,
			Timeout:  cfg.TextTimeout,
		})
	}

	images := imagegen.NewClient(imagegen.Config{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.ImageModel,
		Timeout: cfg.OpenAI.Timeout,
	}, text)
	if cfg.OpenAI.APIKey == "" {
		logging.Warnf("OPENAI_API_KEY not set; featured images will be null")
	}

	fetcherCfg := rssfeeds.FetcherConfig{
		Feeds:   cfg.FreshData.Feeds,
		Timeout: cfg.FreshData.FeedTimeout,
	}
	if cfg.FreshData.ExtractSummaries {
		fetcherCfg.Extractor = rssfeeds.NewExtractor(cfg.FreshData.FeedTimeout)
	}
	fetcher := rssfeeds.NewFetcher(fetcherCfg)
	logging.Infof("fresh data from %d feeds", len(fetcher.Feeds()))

	deps := content.Deps{
		Text:     text,
		Images:   images,
		Articles: fetcher,
	}
	if cfg.Storage.Bucket != "" {
		s3c, err := storage.NewS3(context.Background(), storage.S3Config{
			Region:       cfg.Storage.Region,
			Profile:      cfg.Storage.Profile,
			UsePathStyle: cfg.Storage.UsePathStyle,
		})
		if err != nil {
			logging.Errorf("image re-hosting disabled: %v", err)
		} else {
			deps.Store = storage.NewImageArchive(s3c, storage.ImageArchiveConfig{
				Bucket:        cfg.Storage.Bucket,
				Prefix:        cfg.Storage.Prefix,
				PublicBaseURL: cfg.Storage.PublicBaseURL,
				PresignTTL:    cfg.Storage.PresignTTL,
			})
			logging.Infof("featured images re-hosted in s3://%s/%s", cfg.Storage.Bucket, cfg.Storage.Prefix)
		}
	}

	return content.NewService(deps, content.Options{
		MaxPerFeed:      cfg.FreshData.MaxPerFeed,
		MaxContextChars: cfg.FreshData.MaxContextChars,
	}), fetcher
}
