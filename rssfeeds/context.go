package rssfeeds

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"contentpilot/types"

	"github.com/PuerkitoBio/goquery"
)

const (
	contextHeader    = "=== RECENT DATA ===\n"
	contextFooter    = "\n=== END DATA ===\n"
	TruncationNotice = "\n[Additional articles omitted due to length constraints]"
	maxSummaryRunes  = 100
	truncatedSummary = 97
	summaryEllipsis  = "..."
)

// BuildFreshContext renders articles as a numbered block for the prompt.
// The result never exceeds maxChars plus the truncation notice, counted in
// characters; the footer is reserved inside maxChars.
func BuildFreshContext(articles []types.Article, maxChars int) string {
	if len(articles) == 0 {
		return ""
	}
	footerLen := utf8.RuneCountInString(contextFooter)
	if utf8.RuneCountInString(contextHeader)+footerLen > maxChars {
		return ""
	}

	var b strings.Builder
	b.WriteString(contextHeader)
	size := utf8.RuneCountInString(contextHeader)

	for i, article := range articles {
		block := fmt.Sprintf("\n%d. %s\n%s\n", i+1, article.Title, cleanSummary(article.Summary))
		blockLen := utf8.RuneCountInString(block)
		if size+blockLen+footerLen > maxChars {
			b.WriteString(TruncationNotice)
			break
		}
		b.WriteString(block)
		size += blockLen
	}

	b.WriteString(contextFooter)
	return b.String()
}

// cleanSummary strips markup, collapses whitespace and shortens long text.
func cleanSummary(summary string) string {
	text := strings.Join(strings.Fields(stripHTML(summary)), " ")
	if utf8.RuneCountInString(text) > maxSummaryRunes {
		runes := []rune(text)
		text = string(runes[:truncatedSummary]) + summaryEllipsis
	}
	return text
}

func stripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("script, style").Remove()
	return doc.Text()
}
