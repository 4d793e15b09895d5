package api

import (
	"context"

	"contentpilot/keywords"
	"contentpilot/metrics"
	"contentpilot/types"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// ContentGenerator is the orchestration layer as seen by the HTTP handlers.
type ContentGenerator interface {
	SuggestKeywords(ctx context.Context, products, posts []string) (types.KeywordSuggestions, error)
	GenerateDetailedBlog(ctx context.Context, keyword string, extra map[string]any) (types.DetailedBlog, error)
	GenerateContent(ctx context.Context, prompt string) (types.ContentResponse, error)
	GenerateBlogWithImage(ctx context.Context, prompt string) (types.GeneratedBlog, error)
	GenerateKeywordPlan(ctx context.Context, businessInfo string) (string, error)
	GenerateOutline(ctx context.Context, keyword string) (types.OutlineResponse, error)
	GenerateSEOMeta(ctx context.Context, keyword string) (types.SEOMetaResult, error)
}

// Deps wires the router. Articles is optional; without it the feed
// preview routes are not registered.
type Deps struct {
	Content         ContentGenerator
	Articles        ArticleSource
	MaxPerFeed      int
	MaxContextChars int
	CORSOrigins     []string
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(d.CORSOrigins)))
	r.Use(PrometheusMiddleware(metrics.ServiceName))

	RegisterHealthRoutes(r)
	RegisterMetricsRoutes(r)
	RegisterKeywordRoutes(r, keywords.Process)
	RegisterAIRoutes(r, d.Content)
	if d.Articles != nil {
		RegisterRSSRoutes(r, d.Articles, d.MaxPerFeed, d.MaxContextChars)
	}
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// detached keeps request values but ignores client disconnects, so a
// dropped connection never aborts an in-flight backend call.
func detached(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}
