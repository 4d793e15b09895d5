package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const ServiceName = "contentpilot"

var (
	// HTTP request metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code", "service"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "service"},
	)

	// Generation operations, labelled by operation name and outcome
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentpilot_generations_total",
			Help: "Total number of content generation operations",
		},
		[]string{"operation", "status"},
	)

	// Backend calls (ollama, cohere, openai_images)
	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contentpilot_backend_request_duration_seconds",
			Help:    "Duration of calls to text and image generation backends",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"backend", "status"},
	)

	FeedFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentpilot_feed_fetches_total",
			Help: "Total number of feed source fetches",
		},
		[]string{"source", "status"},
	)

	StructuredFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contentpilot_structured_fallbacks_total",
			Help: "Model outputs that could not be parsed as JSON",
		},
	)

	ImageFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contentpilot_image_fallbacks_total",
			Help: "Image steps that degraded instead of failing",
		},
		[]string{"stage"},
	)
)

// Status label helper.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
