package rssfeeds

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"contentpilot/logging"
	"contentpilot/types"

	readability "github.com/go-shiori/go-readability"
)

const (
	WorkerCount      = 5
	extractorTimeout = 30 * time.Second
)

// Extractor pulls a short excerpt from an entry's linked page.
type Extractor struct {
	workers int
	timeout time.Duration
	fromURL func(pageURL string, timeout time.Duration) (readability.Article, error)
}

func NewExtractor(timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = extractorTimeout
	}
	return &Extractor{
		workers: WorkerCount,
		timeout: timeout,
		fromURL: func(pageURL string, timeout time.Duration) (readability.Article, error) {
			return readability.FromURL(pageURL, timeout)
		},
	}
}

// FillSummaries sets Summary on each article from its page, using a worker
// pool. Failures leave Summary empty so the entry is dropped later.
func (e *Extractor) FillSummaries(ctx context.Context, articles []*types.Article) {
	var wg sync.WaitGroup
	articleChan := make(chan *types.Article, len(articles))

	for i := 0; i < e.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for article := range articleChan {
				if ctx.Err() != nil {
					continue
				}
				if err := e.extractSummary(article); err != nil {
					logging.Debugf("[worker %d] failed to extract %s: %v", workerID, article.Link, err)
				}
			}
		}(i)
	}

	for _, article := range articles {
		articleChan <- article
	}
	close(articleChan)
	wg.Wait()
}

func (e *Extractor) extractSummary(article *types.Article) error {
	if article.Link == "" {
		return fmt.Errorf("article link is empty")
	}

	page, err := e.fromURL(article.Link, e.timeout)
	if err != nil {
		return fmt.Errorf("readability extraction failed: %w", err)
	}

	summary := strings.TrimSpace(page.Excerpt)
	if summary == "" {
		summary = strings.TrimSpace(page.TextContent)
	}
	if summary == "" {
		return fmt.Errorf("no readable text at %s", article.Link)
	}
	article.Summary = summary
	return nil
}
