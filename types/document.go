package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// RawKey is the field name used when model output could not be parsed.
const RawKey = "raw"

// BlogPost is a parsed blog document as returned by the model, plus the
// fields the backend attaches afterwards.
type BlogPost struct {
	Title               string  `json:"title"`
	MetaDescription     string  `json:"meta_description"`
	FeaturedImagePrompt string  `json:"featured_image_prompt"`
	Content             string  `json:"content"`
	FeaturedImageURL    *string `json:"featured_image_url"`
	Keyword             string  `json:"keyword,omitempty"`
}

// RawOutput carries model text that was not valid structured output.
type RawOutput struct {
	Raw     string `json:"raw"`
	Keyword string `json:"keyword,omitempty"`
}

// GeneratedBlog holds exactly one of Post or Raw.
type GeneratedBlog struct {
	Post *BlogPost
	Raw  *RawOutput
}

func (g GeneratedBlog) MarshalJSON() ([]byte, error) {
	if g.Post != nil {
		return json.Marshal(g.Post)
	}
	if g.Raw != nil {
		return json.Marshal(g.Raw)
	}
	return nil, errors.New("generated blog has neither a post nor raw output")
}

// UnmarshalJSON picks the raw variant when a "raw" key is present.
func (g *GeneratedBlog) UnmarshalJSON(b []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(b, &probe); err != nil {
		return err
	}
	if _, ok := probe[RawKey]; ok {
		var raw RawOutput
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		*g = GeneratedBlog{Raw: &raw}
		return nil
	}
	var post BlogPost
	if err := json.Unmarshal(b, &post); err != nil {
		return err
	}
	*g = GeneratedBlog{Post: &post}
	return nil
}

// SetKeyword attaches the topic to whichever variant is present.
func (g GeneratedBlog) SetKeyword(keyword string) {
	switch {
	case g.Post != nil:
		g.Post.Keyword = keyword
	case g.Raw != nil:
		g.Raw.Keyword = keyword
	}
}

// DetailedBlog is the response of the detailed blog operation. Blog holds
// the serialized GeneratedBlog.
type DetailedBlog struct {
	Keyword string `json:"keyword"`
	Blog    string `json:"blog"`
}

type ContentResponse struct {
	Content string `json:"content"`
}

type OutlineResponse struct {
	Keyword string `json:"keyword"`
	Outline string `json:"outline"`
}

// SEOMeta is a title and meta description pair.
type SEOMeta struct {
	Title           string `json:"title"`
	MetaDescription string `json:"meta_description"`
}

// SEOMetaResult holds exactly one of Meta or Raw.
type SEOMetaResult struct {
	Meta *SEOMeta
	Raw  *RawOutput
}

func (r SEOMetaResult) MarshalJSON() ([]byte, error) {
	if r.Meta != nil {
		return json.Marshal(r.Meta)
	}
	if r.Raw != nil {
		return json.Marshal(r.Raw)
	}
	return nil, errors.New("seo meta result is empty")
}

// Metric is a model-reported figure kept as the JSON scalar the model sent,
// since models emit volumes and difficulty as numbers or strings.
type Metric []byte

func (m *Metric) UnmarshalJSON(b []byte) error {
	trimmedBytes := bytes.TrimSpace(b)
	if len(trimmedBytes) > 0 && (trimmedBytes[0] == '{' || trimmedBytes[0] == '[') {
		return errors.New("metric must be a scalar")
	}
	*m = append((*m)[:0], trimmedBytes...)
	return nil
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if len(m) == 0 {
		return []byte("null"), nil
	}
	return []byte(m), nil
}

// String returns the value without JSON string quoting.
func (m Metric) String() string {
	var s string
	if err := json.Unmarshal(m, &s); err == nil {
		return s
	}
	if string(m) == "null" {
		return ""
	}
	return string(m)
}

type KeywordSuggestion struct {
	Keyword      string `json:"keyword"`
	Explanation  string `json:"explanation"`
	SearchVolume Metric `json:"search_volume"`
	Difficulty   Metric `json:"difficulty"`
	Intent       string `json:"intent"`
}

// KeywordSuggestions marshals to the suggestion list, or to a single-element
// list holding the raw model output when it could not be parsed.
type KeywordSuggestions struct {
	Items []KeywordSuggestion
	Raw   *RawOutput
}

func (k KeywordSuggestions) MarshalJSON() ([]byte, error) {
	if k.Raw != nil {
		return json.Marshal([]*RawOutput{k.Raw})
	}
	if k.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(k.Items)
}

func trimmed(s string) string { return strings.TrimSpace(s) }
