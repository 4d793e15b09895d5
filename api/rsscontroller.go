package api

import (
	"context"
	"net/http"
	"strconv"

	"contentpilot/rssfeeds"
	"contentpilot/types"

	"github.com/gin-gonic/gin"
)

// ArticleSource is the feed fetcher as seen by the preview routes.
type ArticleSource interface {
	FetchArticles(ctx context.Context, maxPerFeed int) []types.Article
}

type rssController struct {
	source          ArticleSource
	maxPerFeed      int
	maxContextChars int
}

// RegisterRSSRoutes registers read-only previews of the fresh data a
// generation request would use.
func RegisterRSSRoutes(r *gin.Engine, source ArticleSource, maxPerFeed, maxContextChars int) {
	ctl := &rssController{source: source, maxPerFeed: maxPerFeed, maxContextChars: maxContextChars}
	g := r.Group("/api/rss")
	g.GET("/articles", ctl.handleArticles)
	g.GET("/context", ctl.handleContext)
}

func (ctl *rssController) handleArticles(c *gin.Context) {
	limit := ctl.maxPerFeed
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	articles := ctl.source.FetchArticles(detached(c), limit)
	if articles == nil {
		articles = []types.Article{}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(articles), "articles": articles})
}

// handleContext shows the classification for topic and, when fresh data is
// needed, the context block that would be sent to the model.
func (ctl *rssController) handleContext(c *gin.Context) {
	topic := c.Query("topic")
	if topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic is required"})
		return
	}
	needsFresh := rssfeeds.NeedsFreshData(topic)
	freshContext := ""
	if needsFresh {
		freshContext = rssfeeds.BuildFreshContext(ctl.source.FetchArticles(detached(c), ctl.maxPerFeed), ctl.maxContextChars)
	}
	c.JSON(http.StatusOK, gin.H{"topic": topic, "needs_fresh_data": needsFresh, "context": freshContext})
}
