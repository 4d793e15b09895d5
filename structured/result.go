// Package structured turns free-form model text into either a parsed JSON
// value or a raw fallback. It is the single place that decides whether
// model output is structured.
package structured

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Result is either Parsed or RawFallback.
type Result interface {
	isResult()
}

// Parsed holds a JSON object or array recovered from model output. Text is
// the output as received, fences included.
type Parsed struct {
	Value json.RawMessage
	Text  string
}

// RawFallback holds model output that was not valid JSON, unchanged.
type RawFallback struct {
	Text string
}

func (Parsed) isResult()      {}
func (RawFallback) isResult() {}

// Decode unmarshals the parsed value into v.
func (p Parsed) Decode(v any) error {
	return json.Unmarshal(p.Value, v)
}

var (
	leadingFence  = regexp.MustCompile("^```[A-Za-z0-9_+-]*")
	trailingFence = regexp.MustCompile("```$")
)

// StripFences removes one leading code fence (with optional language tag)
// and one trailing fence, trimming whitespace around both.
func StripFences(text string) string {
	s := strings.TrimSpace(text)
	s = leadingFence.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = trailingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Normalize never fails: anything that is not a JSON object or array after
// fence stripping comes back as RawFallback with the original text.
func Normalize(text string) Result {
	cleaned := StripFences(text)
	if cleaned == "" || (cleaned[0] != '{' && cleaned[0] != '[') {
		return RawFallback{Text: text}
	}
	if !json.Valid([]byte(cleaned)) {
		return RawFallback{Text: text}
	}
	return Parsed{Value: json.RawMessage(cleaned), Text: text}
}
