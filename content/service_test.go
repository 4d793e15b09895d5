package content

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"contentpilot/textgen"
	"contentpilot/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator answers each call with the next queued response and keeps
// every request it saw.
type fakeGenerator struct {
	mu        sync.Mutex
	responses []string
	err       error
	requests  []textgen.Request
}

func (f *fakeGenerator) Generate(_ context.Context, req textgen.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", nil
	}
	out := f.responses[0]
	f.responses = f.responses[1:]
	return out, nil
}

type fakeArticles struct {
	calls    int
	articles []types.Article
}

func (f *fakeArticles) FetchArticles(_ context.Context, maxPerFeed int) []types.Article {
	f.calls++
	return f.articles
}

type fakeImages struct {
	url     string
	err     error
	prompts []string
}

func (f *fakeImages) FeaturedImage(_ context.Context, basic string) (string, error) {
	f.prompts = append(f.prompts, basic)
	return f.url, f.err
}

type fakeStore struct {
	url string
	err error
}

func (f fakeStore) PersistImage(context.Context, string) (string, error) { return f.url, f.err }

const blogJSON = `{"title": "Widget Cleaning Tips That Work", "meta_description": "Learn how to clean widgets.", "featured_image_prompt": "a shiny widget on a desk", "content": "## Why it matters\n..."}`

func newTestService(gen *fakeGenerator, articles *fakeArticles, images *fakeImages) *Service {
	deps := Deps{Text: gen}
	if articles != nil {
		deps.Articles = articles
	}
	if images != nil {
		deps.Images = images
	}
	return NewService(deps, Options{})
}

func decodeBlog(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func TestDetailedBlogEvergreenSkipsFeeds(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"```json\n" + blogJSON + "\n```"}}
	articles := &fakeArticles{articles: []types.Article{{Title: "Should not appear", Summary: "x"}}}
	images := &fakeImages{url: "https://images.example/w.png"}
	svc := newTestService(gen, articles, images)

	out, err := svc.GenerateDetailedBlog(context.Background(), "widget cleaning tips", nil)
	require.NoError(t, err)

	assert.Equal(t, 0, articles.calls)
	require.Len(t, gen.requests, 1)
	req := gen.requests[0]
	assert.Contains(t, req.Prompt, "Do not mention dates")
	assert.NotContains(t, req.Prompt, "RECENT DATA")
	assert.Contains(t, req.System, "meta_description")
	assert.Equal(t, 0.6, req.Temperature)
	assert.Equal(t, 1200, req.MaxTokens)

	assert.Equal(t, "widget cleaning tips", out.Keyword)
	blog := decodeBlog(t, out.Blog)
	assert.Equal(t, "Widget Cleaning Tips That Work", blog["title"])
	assert.Equal(t, "Learn how to clean widgets.", blog["meta_description"])
	assert.Contains(t, blog, "content")
	assert.Equal(t, "widget cleaning tips", blog["keyword"])
	assert.Equal(t, "https://images.example/w.png", blog["featured_image_url"])
	assert.Equal(t, []string{"a shiny widget on a desk"}, images.prompts)
}

func TestDetailedBlogFreshUsesArticles(t *testing.T) {
	gen := &fakeGenerator{responses: []string{blogJSON}}
	articles := &fakeArticles{articles: []types.Article{
		{Title: "Google March core update finished", Summary: "<p>Rollout complete.</p>"},
		{Title: "WordPress 6.8 released", Summary: "New features."},
	}}
	svc := newTestService(gen, articles, &fakeImages{url: "u"})

	_, err := svc.GenerateDetailedBlog(context.Background(), "SEO trends 2025", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, articles.calls)
	prompt := gen.requests[0].Prompt
	assert.Contains(t, prompt, "Google March core update finished")
	assert.Contains(t, prompt, "WordPress 6.8 released")
	assert.Contains(t, prompt, "Rollout complete.")
	assert.Contains(t, prompt, "=== RECENT DATA ===")
}

func TestDetailedBlogFreshWithNoArticlesFallsBackToEvergreen(t *testing.T) {
	gen := &fakeGenerator{responses: []string{blogJSON}}
	articles := &fakeArticles{}
	svc := newTestService(gen, articles, nil)

	_, err := svc.GenerateDetailedBlog(context.Background(), "latest seo news", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, articles.calls)
	assert.Contains(t, gen.requests[0].Prompt, "Do not mention dates")
}

func TestDetailedBlogAppendsCallerContext(t *testing.T) {
	gen := &fakeGenerator{responses: []string{blogJSON}}
	svc := newTestService(gen, nil, nil)

	_, err := svc.GenerateDetailedBlog(context.Background(), "widgets", map[string]any{"previous": "Part 1"})
	require.NoError(t, err)
	assert.Contains(t, gen.requests[0].Prompt, `expand upon: {"previous":"Part 1"}`)
}

func TestDetailedBlogImageFailureKeepsBlog(t *testing.T) {
	gen := &fakeGenerator{responses: []string{blogJSON}}
	svc := newTestService(gen, nil, &fakeImages{err: errors.New("content policy")})

	out, err := svc.GenerateDetailedBlog(context.Background(), "widgets", nil)
	require.NoError(t, err)
	blog := decodeBlog(t, out.Blog)
	assert.Contains(t, blog, "featured_image_url")
	assert.Nil(t, blog["featured_image_url"])
	assert.Equal(t, "Widget Cleaning Tips That Work", blog["title"])
}

func TestDetailedBlogNoImagePromptSkipsImage(t *testing.T) {
	gen := &fakeGenerator{responses: []string{`{"title": "T", "meta_description": "M", "content": "C", "featured_image_url": "https://invented.example"}`}}
	images := &fakeImages{url: "https://images.example/x.png"}
	svc := newTestService(gen, nil, images)

	out, err := svc.GenerateDetailedBlog(context.Background(), "widgets", nil)
	require.NoError(t, err)
	assert.Empty(t, images.prompts)
	assert.Nil(t, decodeBlog(t, out.Blog)["featured_image_url"])
}

func TestDetailedBlogRawFallback(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"Sure! Here is your blog post about widgets..."}}
	images := &fakeImages{url: "u"}
	svc := newTestService(gen, nil, images)

	out, err := svc.GenerateDetailedBlog(context.Background(), "widgets", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"raw": "Sure! Here is your blog post about widgets...", "keyword": "widgets"}`, out.Blog)
	assert.Empty(t, images.prompts)
}

func TestDetailedBlogGenerationFailurePropagates(t *testing.T) {
	gen := &fakeGenerator{err: textgen.ErrGenerationFailed}
	svc := newTestService(gen, nil, nil)

	_, err := svc.GenerateDetailedBlog(context.Background(), "widgets", nil)
	assert.ErrorIs(t, err, textgen.ErrGenerationFailed)
}

func TestDetailedBlogStoresImage(t *testing.T) {
	gen := &fakeGenerator{responses: []string{blogJSON, blogJSON}}
	svc := NewService(Deps{
		Text:   gen,
		Images: &fakeImages{url: "https://expiring.example/a.png"},
		Store:  fakeStore{url: "https://cdn.example/a.png"},
	}, Options{})

	out, err := svc.GenerateDetailedBlog(context.Background(), "widgets", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/a.png", decodeBlog(t, out.Blog)["featured_image_url"])

	svc.store = fakeStore{err: errors.New("bucket missing")}
	out, err = svc.GenerateDetailedBlog(context.Background(), "widgets", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://expiring.example/a.png", decodeBlog(t, out.Blog)["featured_image_url"])
}

func TestGenerateBlogWithImage(t *testing.T) {
	gen := &fakeGenerator{responses: []string{blogJSON}}
	articles := &fakeArticles{articles: []types.Article{{Title: "Breaking change in search", Summary: "s"}}}
	svc := newTestService(gen, articles, &fakeImages{url: "https://images.example/b.png"})

	blog, err := svc.GenerateBlogWithImage(context.Background(), "breaking news on search ranking")
	require.NoError(t, err)
	require.NotNil(t, blog.Post)
	assert.Equal(t, "https://images.example/b.png", *blog.Post.FeaturedImageURL)
	assert.Empty(t, blog.Post.Keyword)
	assert.Contains(t, gen.requests[0].Prompt, "Breaking change in search")
}

func TestSuggestKeywords(t *testing.T) {
	gen := &fakeGenerator{responses: []string{`[{"keyword": "widget cleaner", "explanation": "matches products", "search_volume": "5000", "difficulty": 30, "intent": "commercial"}]`}}
	svc := newTestService(gen, nil, nil)

	out, err := svc.SuggestKeywords(context.Background(), []string{"Widget Cleaner"}, []string{"How to clean"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "widget cleaner", out.Items[0].Keyword)
	assert.Equal(t, "5000", out.Items[0].SearchVolume.String())
	assert.Nil(t, out.Raw)
	assert.Equal(t, 0.5, gen.requests[0].Temperature)
	assert.Equal(t, 800, gen.requests[0].MaxTokens)
	assert.Contains(t, gen.requests[0].Prompt, "Widget Cleaner")
}

func TestSuggestKeywordsDegrades(t *testing.T) {
	tests := []struct {
		name string
		out  string
		raw  string
	}{
		{"prose", "I suggest widget cleaner", "I suggest widget cleaner"},
		{"object instead of list", `{"keywords": ["a"]}`, `{"keywords": ["a"]}`},
		{"fenced object keeps fences", "```json\n{\"keyword\": \"only one\"}\n```", "```json\n{\"keyword\": \"only one\"}\n```"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&fakeGenerator{responses: []string{tt.out}}, nil, nil)
			out, err := svc.SuggestKeywords(context.Background(), nil, nil)
			require.NoError(t, err)
			require.NotNil(t, out.Raw)
			assert.Equal(t, tt.raw, out.Raw.Raw)

			b, err := json.Marshal(out)
			require.NoError(t, err)
			var list []map[string]any
			require.NoError(t, json.Unmarshal(b, &list))
			assert.Len(t, list, 1)
		})
	}
}

func TestGenerateContent(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"Here is the copy."}}
	svc := newTestService(gen, nil, nil)

	out, err := svc.GenerateContent(context.Background(), "Write a product blurb")
	require.NoError(t, err)
	assert.Equal(t, "Here is the copy.", out.Content)
	assert.Contains(t, gen.requests[0].Prompt, "REQUEST: Write a product blurb")
	assert.Equal(t, 0.7, gen.requests[0].Temperature)
	assert.Equal(t, 1024, gen.requests[0].MaxTokens)

	_, err = newTestService(&fakeGenerator{err: textgen.ErrGenerationFailed}, nil, nil).GenerateContent(context.Background(), "x")
	assert.ErrorIs(t, err, textgen.ErrGenerationFailed)
}

func TestGenerateKeywordPlan(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"<table><tr><td>widget</td></tr></table>"}}
	svc := newTestService(gen, nil, nil)

	html, err := svc.GenerateKeywordPlan(context.Background(), "We sell widgets")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(html, "<table>"))
	assert.Contains(t, gen.requests[0].Prompt, "Business: We sell widgets")
}

func TestGenerateOutline(t *testing.T) {
	gen := &fakeGenerator{responses: []string{"## Intro"}}
	articles := &fakeArticles{articles: []types.Article{{Title: "Fresh item", Summary: "s"}}}
	svc := newTestService(gen, articles, nil)

	out, err := svc.GenerateOutline(context.Background(), "current seo practice")
	require.NoError(t, err)
	assert.Equal(t, "## Intro", out.Outline)
	assert.Contains(t, gen.requests[0].Prompt, "Fresh item")
}

func TestGenerateSEOMeta(t *testing.T) {
	svc := newTestService(&fakeGenerator{responses: []string{`{"title": "T", "meta_description": "M"}`}}, nil, nil)
	out, err := svc.GenerateSEOMeta(context.Background(), "widgets")
	require.NoError(t, err)
	require.NotNil(t, out.Meta)
	assert.Equal(t, "T", out.Meta.Title)

	svc = newTestService(&fakeGenerator{responses: []string{"no json"}}, nil, nil)
	out, err = svc.GenerateSEOMeta(context.Background(), "widgets")
	require.NoError(t, err)
	require.NotNil(t, out.Raw)
	assert.Equal(t, "no json", out.Raw.Raw)

	fenced := "```json\n[\"T\", \"M\"]\n```"
	svc = newTestService(&fakeGenerator{responses: []string{fenced}}, nil, nil)
	out, err = svc.GenerateSEOMeta(context.Background(), "widgets")
	require.NoError(t, err)
	require.NotNil(t, out.Raw)
	assert.Equal(t, fenced, out.Raw.Raw)
}

func TestDetailedBlogWrongShapeKeepsOriginalText(t *testing.T) {
	fenced := "```json\n[\"not\", \"a\", \"post\"]\n```"
	svc := newTestService(&fakeGenerator{responses: []string{fenced}}, nil, nil)
	out, err := svc.GenerateBlogWithImage(context.Background(), "widgets")
	require.NoError(t, err)
	require.NotNil(t, out.Raw)
	assert.Equal(t, fenced, out.Raw.Raw)
}
