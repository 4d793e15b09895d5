package rssfeeds

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"contentpilot/config"
	"contentpilot/logging"
	"contentpilot/metrics"
	"contentpilot/types"

	"github.com/mmcdole/gofeed"
)

const userAgent = "ContentPilot/1.0 (+feed reader)"

// SummaryFiller fills in summaries for entries whose feed item had none.
type SummaryFiller interface {
	FillSummaries(ctx context.Context, articles []*types.Article)
}

// FetcherConfig configures a Fetcher. Zero values fall back to defaults.
type FetcherConfig struct {
	Feeds      []string
	Timeout    time.Duration
	HTTPClient *http.Client
	// Extractor is optional; without it entries lacking a summary are dropped.
	Extractor SummaryFiller
}

// Fetcher reads recent entries from a fixed list of feed sources.
type Fetcher struct {
	feeds     []string
	timeout   time.Duration
	client    *http.Client
	extractor SummaryFiller
}

func NewFetcher(cfg FetcherConfig) *Fetcher {
	feeds := cfg.Feeds
	if len(feeds) == 0 {
		feeds = config.DefaultFeeds
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultFeedTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &Fetcher{
		feeds:     append([]string(nil), feeds...),
		timeout:   timeout,
		client:    client,
		extractor: cfg.Extractor,
	}
}

// Feeds returns the configured feed URLs.
func (f *Fetcher) Feeds() []string {
	return append([]string(nil), f.feeds...)
}

// FetchArticles returns up to maxPerFeed usable entries from every source,
// concatenated in source order. A failing source is logged and skipped.
func (f *Fetcher) FetchArticles(ctx context.Context, maxPerFeed int) []types.Article {
	if maxPerFeed <= 0 {
		maxPerFeed = config.DefaultMaxPerFeed
	}

	var articles []types.Article
	for _, feedURL := range f.feeds {
		items, err := f.fetchFeed(ctx, feedURL, maxPerFeed)
		metrics.FeedFetchesTotal.WithLabelValues(feedURL, metrics.Status(err)).Inc()
		if err != nil {
			logging.WithFields(logging.Fields{"feed": feedURL}).Warnf("skipping feed: %v", err)
			continue
		}
		articles = append(articles, items...)
	}
	logging.Debugf("fetched %d articles from %d feeds", len(articles), len(f.feeds))
	return articles
}

func (f *Fetcher) fetchFeed(ctx context.Context, feedURL string, maxCount int) ([]types.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	parser := gofeed.NewParser()
	parser.Client = f.client
	parser.UserAgent = userAgent

	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	count := min(len(feed.Items), maxCount)
	candidates := make([]*types.Article, 0, count)
	var missing []*types.Article

	for _, item := range feed.Items[:count] {
		if item == nil {
			continue
		}

		summary := item.Description
		if strings.TrimSpace(summary) == "" {
			summary = item.Content
		}
		published := item.Published
		if published == "" {
			published = item.Updated
		}

		article := &types.Article{
			Title:     strings.TrimSpace(item.Title),
			Summary:   strings.TrimSpace(summary),
			Link:      item.Link,
			Published: published,
		}
		candidates = append(candidates, article)
		if article.Title != "" && article.Summary == "" && article.Link != "" {
			missing = append(missing, article)
		}
	}

	if f.extractor != nil && len(missing) > 0 {
		f.extractor.FillSummaries(ctx, missing)
	}

	articles := make([]types.Article, 0, len(candidates))
	for _, a := range candidates {
		if a.Valid() {
			articles = append(articles, *a)
		}
	}
	return articles, nil
}
