package tui

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"contentpilot/types"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, blog string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/health":
			w.WriteHeader(http.StatusOK)
		case "/ai/generate-detailed-blog":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(types.DetailedBlog{Keyword: body["keyword"], Blog: blog})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAPIClientDecodesNestedBlog(t *testing.T) {
	srv := newTestServer(t, `{"title":"SEO in 2025","meta_description":"m","featured_image_prompt":"p","content":"body","featured_image_url":null}`, http.StatusOK)
	c := NewAPIClient(srv.URL + "/")

	require.NoError(t, c.Health(t.Context()))

	res, err := c.GenerateDetailedBlog(t.Context(), "seo trends")
	require.NoError(t, err)
	assert.Equal(t, "seo trends", res.Keyword)
	require.NotNil(t, res.Blog.Post)
	assert.Equal(t, "SEO in 2025", res.Blog.Post.Title)
	assert.Nil(t, res.Blog.Post.FeaturedImageURL)
}

func TestAPIClientRawFallbackAndErrors(t *testing.T) {
	srv := newTestServer(t, `{"raw":"not json at all"}`, http.StatusOK)
	res, err := NewAPIClient(srv.URL).GenerateDetailedBlog(t.Context(), "k")
	require.NoError(t, err)
	require.NotNil(t, res.Blog.Raw)
	assert.Equal(t, "not json at all", res.Blog.Raw.Raw)

	bad := newTestServer(t, "", http.StatusInternalServerError)
	_, err = NewAPIClient(bad.URL).GenerateDetailedBlog(t.Context(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server returned 500")
}

func typeKeyword(m Model, s string) Model {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func TestEnterStartsGeneration(t *testing.T) {
	m := typeKeyword(NewModel("http://localhost:0"), "  seo tips ")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.Equal(t, StateGenerating, m.State)
	assert.Equal(t, "seo tips", m.Keyword)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "seo tips")
}

func TestEnterIgnoresBlankKeyword(t *testing.T) {
	next, cmd := NewModel("http://localhost:0").Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, StateInput, next.(Model).State)
	assert.Nil(t, cmd)
}

func TestBlogGeneratedTransitions(t *testing.T) {
	url := "https://img.example/a.png"
	m := NewModel("http://localhost:0")
	m.State = StateGenerating

	next, _ := m.Update(BlogGeneratedMsg{Result: &BlogResult{
		Keyword: "k",
		Blog:    types.GeneratedBlog{Post: &types.BlogPost{Title: "Hello", Content: "c", FeaturedImageURL: &url}},
	}})
	done := next.(Model)
	assert.Equal(t, StateComplete, done.State)
	assert.Contains(t, done.View(), "Hello")
	assert.Contains(t, done.View(), url)

	next, _ = done.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	again := next.(Model)
	assert.Equal(t, StateInput, again.State)
	assert.Nil(t, again.Result)

	next, _ = m.Update(BlogGeneratedMsg{Err: errors.New("boom")})
	failed := next.(Model)
	assert.Equal(t, StateError, failed.State)
	assert.Contains(t, failed.View(), "boom")
}

func TestHealthMessageSetsConnection(t *testing.T) {
	next, _ := NewModel("http://localhost:0").Update(HealthMsg{})
	assert.True(t, next.(Model).Connected)

	next, _ = NewModel("http://localhost:0").Update(HealthMsg{Err: errors.New("refused")})
	assert.False(t, next.(Model).Connected)
	assert.Contains(t, next.(Model).View(), "Not connected")
}

func TestPreviewTruncatesByRune(t *testing.T) {
	long := make([]rune, previewRunes+10)
	for i := range long {
		long[i] = 'é'
	}
	out := []rune(preview(string(long)))
	assert.Len(t, out, previewRunes+3)
}
