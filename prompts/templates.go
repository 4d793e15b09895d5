// Package prompts holds every prompt the backend sends to a text model.
// Build is pure: the same kind and parameters always give the same prompt.
package prompts

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind selects a prompt template.
type Kind int

const (
	KindKeywordSuggestions Kind = iota
	KindEvergreenPost
	KindFreshPost
	KindBlogMetadata
	KindImageEnhancement
	KindKeywordPlan
	KindGeneralContent
	KindOutline
	KindSEOMeta
)

var kindNames = map[Kind]string{
	KindKeywordSuggestions: "keyword_suggestions",
	KindEvergreenPost:      "evergreen_post",
	KindFreshPost:          "fresh_post",
	KindBlogMetadata:       "blog_metadata",
	KindImageEnhancement:   "image_enhancement",
	KindKeywordPlan:        "keyword_plan",
	KindGeneralContent:     "general_content",
	KindOutline:            "outline",
	KindSEOMeta:            "seo_meta",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

var (
	ErrUnknownKind  = errors.New("unknown prompt kind")
	ErrMissingParam = errors.New("missing prompt parameter")
)

// Params carries template inputs. Each kind reads only the fields it needs.
type Params struct {
	Topic        string
	FreshContext string
	Products     []string
	Posts        []string
	// Text is the caller's free-form request, business description or
	// basic image description, depending on the kind.
	Text string
}

// Prompt is what gets sent to the model. System may be empty.
type Prompt struct {
	System string
	User   string
}

// Build renders the template for kind.
func Build(kind Kind, p Params) (Prompt, error) {
	switch kind {
	case KindKeywordSuggestions:
		return Prompt{User: keywordSuggestions(p.Products, p.Posts)}, nil
	case KindEvergreenPost:
		if err := requireParam(kind, "topic", p.Topic); err != nil {
			return Prompt{}, err
		}
		return Prompt{User: evergreenPost(p.Topic)}, nil
	case KindFreshPost:
		if err := requireParam(kind, "topic", p.Topic); err != nil {
			return Prompt{}, err
		}
		if err := requireParam(kind, "fresh context", p.FreshContext); err != nil {
			return Prompt{}, err
		}
		return Prompt{User: freshPost(p.Topic, p.FreshContext)}, nil
	case KindBlogMetadata:
		return Prompt{System: blogMetadataSystem}, nil
	case KindImageEnhancement:
		if err := requireParam(kind, "image description", p.Text); err != nil {
			return Prompt{}, err
		}
		return Prompt{User: imageEnhancement(p.Text)}, nil
	case KindKeywordPlan:
		if err := requireParam(kind, "business info", p.Text); err != nil {
			return Prompt{}, err
		}
		return Prompt{User: keywordPlan(p.Text)}, nil
	case KindGeneralContent:
		if err := requireParam(kind, "request", p.Text); err != nil {
			return Prompt{}, err
		}
		return Prompt{User: generalContent(p.Text)}, nil
	case KindOutline:
		if err := requireParam(kind, "topic", p.Topic); err != nil {
			return Prompt{}, err
		}
		return Prompt{User: outline(p.Topic, p.FreshContext)}, nil
	case KindSEOMeta:
		if err := requireParam(kind, "topic", p.Topic); err != nil {
			return Prompt{}, err
		}
		return Prompt{User: seoMeta(p.Topic)}, nil
	default:
		return Prompt{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}

// BlogDocument builds the full-document request: the fresh template when
// freshContext is non-empty, the evergreen one otherwise, with the caller's
// context object appended and the metadata rules as the system text.
func BlogDocument(topic, freshContext string, extra map[string]any) (Prompt, error) {
	kind := KindEvergreenPost
	if freshContext != "" {
		kind = KindFreshPost
	}
	body, err := Build(kind, Params{Topic: topic, FreshContext: freshContext})
	if err != nil {
		return Prompt{}, err
	}
	if len(extra) > 0 {
		serialized, err := json.Marshal(extra)
		if err != nil {
			return Prompt{}, fmt.Errorf("failed to serialize blog context: %w", err)
		}
		body.User += "\n\nHere is some context or previous blog data to expand upon: " + string(serialized)
	}
	body.System = blogMetadataSystem
	return body, nil
}

func requireParam(kind Kind, name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s needs %s", ErrMissingParam, kind, name)
	}
	return nil
}
