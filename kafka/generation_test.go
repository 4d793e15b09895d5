package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"contentpilot/content"
	"contentpilot/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	err      error
	keyword  string
	extra    map[string]any
	products []string
}

func (f *fakeGenerator) SuggestKeywords(_ context.Context, products, _ []string) (types.KeywordSuggestions, error) {
	f.products = products
	return types.KeywordSuggestions{Items: []types.KeywordSuggestion{{Keyword: "seo tools"}}}, f.err
}

func (f *fakeGenerator) GenerateDetailedBlog(_ context.Context, keyword string, extra map[string]any) (types.DetailedBlog, error) {
	f.keyword, f.extra = keyword, extra
	return types.DetailedBlog{Keyword: keyword, Blog: `{"title":"T"}`}, f.err
}

func (f *fakeGenerator) GenerateContent(_ context.Context, prompt string) (types.ContentResponse, error) {
	return types.ContentResponse{Content: "echo " + prompt}, f.err
}

func (f *fakeGenerator) GenerateBlogWithImage(_ context.Context, _ string) (types.GeneratedBlog, error) {
	return types.GeneratedBlog{Raw: &types.RawOutput{Raw: "text"}}, f.err
}

func (f *fakeGenerator) GenerateKeywordPlan(_ context.Context, _ string) (string, error) {
	return "plan", f.err
}

func (f *fakeGenerator) GenerateOutline(_ context.Context, keyword string) (types.OutlineResponse, error) {
	return types.OutlineResponse{Keyword: keyword, Outline: "1. Intro"}, f.err
}

func (f *fakeGenerator) GenerateSEOMeta(_ context.Context, _ string) (types.SEOMetaResult, error) {
	return types.SEOMetaResult{Meta: &types.SEOMeta{Title: "T", MetaDescription: "D"}}, f.err
}

type fakePublisher struct {
	mu   sync.Mutex
	keys []string
	sent []GenerationResult
	err  error
}

func (p *fakePublisher) Publish(_ context.Context, key string, value any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	p.sent = append(p.sent, value.(GenerationResult))
	return p.err
}

func encode(t *testing.T, req GenerationRequest) []byte {
	t.Helper()
	b, err := json.Marshal(req)
	require.NoError(t, err)
	return b
}

func TestGenerationHandlerPublishesSuccess(t *testing.T) {
	gen := &fakeGenerator{}
	pub := &fakePublisher{}
	h := NewGenerationHandler(gen, pub)

	mark, err := h.HandleMessage(context.Background(), encode(t, GenerationRequest{
		UUID:      "req-1",
		Operation: content.OpDetailedBlog,
		Keyword:   "latest seo news",
		Context:   map[string]any{"previous": "draft"},
	}))
	require.NoError(t, err)
	assert.True(t, mark)

	require.Len(t, pub.sent, 1)
	res := pub.sent[0]
	assert.Equal(t, "req-1", pub.keys[0])
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Nil(t, res.Error)
	assert.JSONEq(t, `{"keyword":"latest seo news","blog":"{\"title\":\"T\"}"}`, string(res.Result))
	assert.Equal(t, "latest seo news", gen.keyword)
	assert.Equal(t, "draft", gen.extra["previous"])
}

func TestGenerationHandlerAssignsUUID(t *testing.T) {
	pub := &fakePublisher{}
	h := NewGenerationHandler(&fakeGenerator{}, pub)

	_, err := h.HandleMessage(context.Background(), encode(t, GenerationRequest{
		Operation: content.OpContent,
		Prompt:    "hello",
	}))
	require.NoError(t, err)
	require.Len(t, pub.sent, 1)
	assert.NotEmpty(t, pub.sent[0].UUID)
	assert.Equal(t, pub.sent[0].UUID, pub.keys[0])
	assert.JSONEq(t, `{"content":"echo hello"}`, string(pub.sent[0].Result))
}

func TestGenerationHandlerPublishesErrors(t *testing.T) {
	cases := []struct {
		name string
		gen  *fakeGenerator
		req  GenerationRequest
		msg  string
	}{
		{"backend failure", &fakeGenerator{err: errors.New("ollama down")},
			GenerationRequest{UUID: "a", Operation: content.OpOutline, Keyword: "k"}, "ollama down"},
		{"unknown operation", &fakeGenerator{},
			GenerationRequest{UUID: "b", Operation: "translate"}, `unknown operation "translate"`},
		{"missing keyword", &fakeGenerator{},
			GenerationRequest{UUID: "c", Operation: content.OpSEOMeta}, "keyword is required"},
		{"missing prompt", &fakeGenerator{},
			GenerationRequest{UUID: "d", Operation: content.OpBlogWithImage}, "prompt is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pub := &fakePublisher{}
			mark, err := NewGenerationHandler(tc.gen, pub).HandleMessage(context.Background(), encode(t, tc.req))
			require.NoError(t, err)
			assert.True(t, mark)
			require.Len(t, pub.sent, 1)
			assert.Equal(t, StatusError, pub.sent[0].Status)
			require.NotNil(t, pub.sent[0].Error)
			assert.Contains(t, *pub.sent[0].Error, tc.msg)
			assert.Empty(t, pub.sent[0].Result)
		})
	}
}

func TestGenerationHandlerSkipsBadMessages(t *testing.T) {
	pub := &fakePublisher{}
	h := NewGenerationHandler(&fakeGenerator{}, pub)

	mark, err := h.HandleMessage(context.Background(), []byte("not json"))
	require.NoError(t, err)
	assert.True(t, mark)

	mark, err = h.HandleMessage(context.Background(), []byte(`{"uuid":"x"}`))
	require.NoError(t, err)
	assert.True(t, mark)

	assert.Empty(t, pub.sent)
}

func TestGenerationHandlerMarksWhenPublishFails(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker gone")}
	mark, err := NewGenerationHandler(&fakeGenerator{}, pub).HandleMessage(context.Background(),
		encode(t, GenerationRequest{UUID: "e", Operation: content.OpKeywordPlan, Prompt: "bakery"}))
	require.NoError(t, err)
	assert.True(t, mark)
}

func TestRunSuggestKeywords(t *testing.T) {
	gen := &fakeGenerator{}
	res := Run(context.Background(), gen, &GenerationRequest{
		UUID:      "f",
		Operation: content.OpSuggestKeywords,
		Products:  []string{"widgets"},
	})
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, []string{"widgets"}, gen.products)

	var body struct {
		Keywords []map[string]any `json:"keywords"`
	}
	require.NoError(t, json.Unmarshal(res.Result, &body))
	require.Len(t, body.Keywords, 1)
	assert.Equal(t, "seo tools", body.Keywords[0]["keyword"])
}

func TestTypedMessageHandlerProcessError(t *testing.T) {
	h := &TypedMessageHandler[GenerationRequest]{
		Process: func(context.Context, *GenerationRequest) error { return errors.New("boom") },
	}
	mark, err := h.HandleMessage(context.Background(), []byte(`{"operation":"content"}`))
	assert.Error(t, err)
	assert.False(t, mark)

	mark, err = h.HandleMessage(context.Background(), []byte("{"))
	assert.NoError(t, err)
	assert.False(t, mark)
}
