package news

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanSummary turns an HTML-ish summary (RSS descriptions, scraped snippets)
// into plain text with collapsed whitespace. Plain text passes through.
func CleanSummary(s string) string {
	if s == "" {
		return ""
	}
	text := s
	if strings.ContainsAny(s, "<&") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
		if err == nil {
			text = doc.Text()
		}
	}
	return strings.Join(strings.Fields(text), " ")
}
