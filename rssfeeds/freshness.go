package rssfeeds

import (
	"regexp"
	"strings"
)

// freshTerms mark a topic as time-sensitive. Matching is by substring, so
// "news" also matches "newsletter".
var freshTerms = []string{
	"latest",
	"recent",
	"update",
	"trend",
	"new",
	"current",
	"now",
	"today",
	"breaking",
	"news",
}

var recentYear = regexp.MustCompile(`\b(202[4-9]|203[0-9])\b`)

// NeedsFreshData reports whether a topic should be grounded in recent
// articles rather than written as evergreen content.
func NeedsFreshData(topic string) bool {
	t := strings.ToLower(strings.TrimSpace(topic))
	if t == "" {
		return false
	}
	for _, term := range freshTerms {
		if strings.Contains(t, term) {
			return true
		}
	}
	return recentYear.MatchString(t)
}
