// Package content composes freshness detection, feed context, prompts,
// text generation and image generation into the operations the API serves.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"contentpilot/config"
	"contentpilot/logging"
	"contentpilot/metrics"
	"contentpilot/prompts"
	"contentpilot/rssfeeds"
	"contentpilot/structured"
	"contentpilot/textgen"
	"contentpilot/types"
)

// Operation names, shared by metrics and the queue boundary.
const (
	OpSuggestKeywords = "suggest_keywords"
	OpDetailedBlog    = "detailed_blog"
	OpContent         = "content"
	OpBlogWithImage   = "blog_with_image"
	OpKeywordPlan     = "keyword_plan"
	OpOutline         = "outline"
	OpSEOMeta         = "seo_meta"
)

// ArticleSource supplies recent articles for time-sensitive topics.
type ArticleSource interface {
	FetchArticles(ctx context.Context, maxPerFeed int) []types.Article
}

// ImageGenerator turns a basic description into an image URL.
type ImageGenerator interface {
	FeaturedImage(ctx context.Context, basic string) (string, error)
}

// ImageStore re-hosts an image and returns the durable URL.
type ImageStore interface {
	PersistImage(ctx context.Context, sourceURL string) (string, error)
}

// Deps are the collaborators of a Service. Images, Articles and Store may be nil.
type Deps struct {
	Text     textgen.Generator
	Images   ImageGenerator
	Articles ArticleSource
	Store    ImageStore
}

type Options struct {
	MaxPerFeed      int
	MaxContextChars int
}

type Service struct {
	text     textgen.Generator
	images   ImageGenerator
	articles ArticleSource
	store    ImageStore
	opts     Options
}

func NewService(deps Deps, opts Options) *Service {
	if opts.MaxPerFeed <= 0 {
		opts.MaxPerFeed = config.DefaultMaxPerFeed
	}
	if opts.MaxContextChars <= 0 {
		opts.MaxContextChars = config.DefaultMaxContextChars
	}
	return &Service{
		text:     deps.Text,
		images:   deps.Images,
		articles: deps.Articles,
		store:    deps.Store,
		opts:     opts,
	}
}

// Generation settings per operation.
var (
	keywordSettings = textgen.Request{Temperature: 0.5, MaxTokens: 800}
	blogSettings    = textgen.Request{Temperature: 0.6, MaxTokens: 1200}
	contentSettings = textgen.Request{Temperature: 0.7, MaxTokens: 1024}
	planSettings    = textgen.Request{Temperature: 0.5, MaxTokens: 800}
	outlineSettings = textgen.Request{Temperature: 0.6, MaxTokens: 600}
	seoMetaSettings = textgen.Request{Temperature: 0.5, MaxTokens: 300}
)

func withPrompt(settings textgen.Request, p prompts.Prompt) textgen.Request {
	settings.Prompt = p.User
	settings.System = p.System
	return settings
}

// SuggestKeywords asks for keyword ideas based on a store's products and posts.
func (s *Service) SuggestKeywords(ctx context.Context, products, posts []string) (result types.KeywordSuggestions, err error) {
	defer observe(OpSuggestKeywords, &err)

	p, err := prompts.Build(prompts.KindKeywordSuggestions, prompts.Params{Products: products, Posts: posts})
	if err != nil {
		return types.KeywordSuggestions{}, err
	}
	res, err := textgen.GenerateStructured(ctx, s.text, withPrompt(keywordSettings, p))
	if err != nil {
		return types.KeywordSuggestions{}, fmt.Errorf("failed to suggest keywords: %w", err)
	}

	switch r := res.(type) {
	case structured.Parsed:
		var items []types.KeywordSuggestion
		if err := r.Decode(&items); err != nil {
			logging.Warnf("keyword suggestions were not a list of suggestions: %v", err)
			return types.KeywordSuggestions{Raw: &types.RawOutput{Raw: r.Text}}, nil
		}
		return types.KeywordSuggestions{Items: items}, nil
	case structured.RawFallback:
		return types.KeywordSuggestions{Raw: &types.RawOutput{Raw: r.Text}}, nil
	default:
		return types.KeywordSuggestions{}, fmt.Errorf("unexpected structured result %T", res)
	}
}

// GenerateDetailedBlog writes a full post for a keyword. extra is optional
// caller context, serialized into the prompt.
func (s *Service) GenerateDetailedBlog(ctx context.Context, keyword string, extra map[string]any) (result types.DetailedBlog, err error) {
	defer observe(OpDetailedBlog, &err)

	blog, err := s.generateBlog(ctx, keyword, extra)
	if err != nil {
		return types.DetailedBlog{}, fmt.Errorf("failed to generate detailed blog for %q: %w", keyword, err)
	}
	blog.SetKeyword(keyword)

	serialized, err := json.Marshal(blog)
	if err != nil {
		return types.DetailedBlog{}, fmt.Errorf("failed to serialize blog: %w", err)
	}
	return types.DetailedBlog{Keyword: keyword, Blog: string(serialized)}, nil
}

// GenerateBlogWithImage is GenerateDetailedBlog with the topic taken from a
// free-form prompt. The document is returned as is.
func (s *Service) GenerateBlogWithImage(ctx context.Context, prompt string) (result types.GeneratedBlog, err error) {
	defer observe(OpBlogWithImage, &err)

	blog, err := s.generateBlog(ctx, prompt, nil)
	if err != nil {
		return types.GeneratedBlog{}, fmt.Errorf("failed to generate blog with image: %w", err)
	}
	return blog, nil
}

// GenerateContent returns plain text for a free-form request.
func (s *Service) GenerateContent(ctx context.Context, prompt string) (result types.ContentResponse, err error) {
	defer observe(OpContent, &err)

	p, err := prompts.Build(prompts.KindGeneralContent, prompts.Params{Text: prompt})
	if err != nil {
		return types.ContentResponse{}, err
	}
	text, err := s.text.Generate(ctx, withPrompt(contentSettings, p))
	if err != nil {
		return types.ContentResponse{}, fmt.Errorf("failed to generate content: %w", err)
	}
	return types.ContentResponse{Content: text}, nil
}

// GenerateKeywordPlan returns the model's HTML table unvalidated.
func (s *Service) GenerateKeywordPlan(ctx context.Context, businessInfo string) (result string, err error) {
	defer observe(OpKeywordPlan, &err)

	p, err := prompts.Build(prompts.KindKeywordPlan, prompts.Params{Text: businessInfo})
	if err != nil {
		return "", err
	}
	html, err := s.text.Generate(ctx, withPrompt(planSettings, p))
	if err != nil {
		return "", fmt.Errorf("failed to generate keyword plan: %w", err)
	}
	return html, nil
}

// GenerateOutline returns a markdown heading outline for a keyword.
func (s *Service) GenerateOutline(ctx context.Context, keyword string) (result types.OutlineResponse, err error) {
	defer observe(OpOutline, &err)

	p, err := prompts.Build(prompts.KindOutline, prompts.Params{Topic: keyword, FreshContext: s.freshContext(ctx, keyword)})
	if err != nil {
		return types.OutlineResponse{}, err
	}
	outline, err := s.text.Generate(ctx, withPrompt(outlineSettings, p))
	if err != nil {
		return types.OutlineResponse{}, fmt.Errorf("failed to generate outline: %w", err)
	}
	return types.OutlineResponse{Keyword: keyword, Outline: outline}, nil
}

// GenerateSEOMeta returns a title and meta description for a keyword.
func (s *Service) GenerateSEOMeta(ctx context.Context, keyword string) (result types.SEOMetaResult, err error) {
	defer observe(OpSEOMeta, &err)

	p, err := prompts.Build(prompts.KindSEOMeta, prompts.Params{Topic: keyword})
	if err != nil {
		return types.SEOMetaResult{}, err
	}
	res, err := textgen.GenerateStructured(ctx, s.text, withPrompt(seoMetaSettings, p))
	if err != nil {
		return types.SEOMetaResult{}, fmt.Errorf("failed to generate seo meta: %w", err)
	}

	switch r := res.(type) {
	case structured.Parsed:
		var meta types.SEOMeta
		if err := r.Decode(&meta); err != nil {
			return types.SEOMetaResult{Raw: &types.RawOutput{Raw: r.Text}}, nil
		}
		return types.SEOMetaResult{Meta: &meta}, nil
	case structured.RawFallback:
		return types.SEOMetaResult{Raw: &types.RawOutput{Raw: r.Text}}, nil
	default:
		return types.SEOMetaResult{}, fmt.Errorf("unexpected structured result %T", res)
	}
}

func (s *Service) generateBlog(ctx context.Context, topic string, extra map[string]any) (types.GeneratedBlog, error) {
	p, err := prompts.BlogDocument(topic, s.freshContext(ctx, topic), extra)
	if err != nil {
		return types.GeneratedBlog{}, err
	}

	res, err := textgen.GenerateStructured(ctx, s.text, withPrompt(blogSettings, p))
	if err != nil {
		return types.GeneratedBlog{}, err
	}

	blog := toBlog(res)
	if blog.Post != nil {
		blog.Post.FeaturedImageURL = nil
		if imagePrompt := strings.TrimSpace(blog.Post.FeaturedImagePrompt); imagePrompt != "" {
			blog.Post.FeaturedImageURL = s.featuredImage(ctx, imagePrompt)
		}
	}
	return blog, nil
}

func toBlog(res structured.Result) types.GeneratedBlog {
	switch r := res.(type) {
	case structured.Parsed:
		var post types.BlogPost
		if err := r.Decode(&post); err != nil {
			logging.Warnf("model output was JSON but not a blog document: %v", err)
			return types.GeneratedBlog{Raw: &types.RawOutput{Raw: r.Text}}
		}
		return types.GeneratedBlog{Post: &post}
	case structured.RawFallback:
		return types.GeneratedBlog{Raw: &types.RawOutput{Raw: r.Text}}
	default:
		return types.GeneratedBlog{Raw: &types.RawOutput{}}
	}
}

// freshContext returns "" for evergreen topics or when no article survives.
func (s *Service) freshContext(ctx context.Context, topic string) string {
	if s.articles == nil || !rssfeeds.NeedsFreshData(topic) {
		return ""
	}
	articles := s.articles.FetchArticles(ctx, s.opts.MaxPerFeed)
	logging.Debugf("topic %q needs fresh data: %d articles", topic, len(articles))
	return rssfeeds.BuildFreshContext(articles, s.opts.MaxContextChars)
}

// featuredImage never fails the caller; it returns nil when no image could be made.
func (s *Service) featuredImage(ctx context.Context, prompt string) *string {
	if s.images == nil {
		return nil
	}
	url, err := s.images.FeaturedImage(ctx, prompt)
	if err != nil {
		logging.Warnf("could not generate featured image: %v", err)
		metrics.ImageFallbacksTotal.WithLabelValues("generate").Inc()
		return nil
	}

	if s.store != nil {
		stored, err := s.store.PersistImage(ctx, url)
		if err != nil {
			logging.Warnf("could not re-host featured image, keeping original URL: %v", err)
			metrics.ImageFallbacksTotal.WithLabelValues("store").Inc()
		} else {
			url = stored
		}
	}
	return &url
}

func observe(op string, err *error) {
	metrics.GenerationsTotal.WithLabelValues(op, metrics.Status(*err)).Inc()
}
