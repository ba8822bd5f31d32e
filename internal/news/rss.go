package news

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"equity-intel/internal/api"
	"equity-intel/internal/logger"
)

// RSSFetcher reads per-ticker RSS/Atom feeds. Feed URLs may contain a
// {symbol} placeholder.
type RSSFetcher struct {
	feeds  []string
	parser *gofeed.Parser
}

// NewRSSFetcher creates a fetcher over the given feed URL templates
func NewRSSFetcher(feeds []string, timeout time.Duration) *RSSFetcher {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: timeout}
	parser.UserAgent = api.BrowserHeaders()["User-Agent"]

	valid := make([]string, 0, len(feeds))
	for _, f := range feeds {
		if strings.HasPrefix(f, "http://") || strings.HasPrefix(f, "https://") {
			valid = append(valid, f)
		}
	}

	return &RSSFetcher{feeds: valid, parser: parser}
}

func (r *RSSFetcher) FetchNews(ctx context.Context, ticker string, from, to time.Time) ([]Item, error) {
	if len(r.feeds) == 0 {
		return nil, fmt.Errorf("no RSS feeds configured")
	}

	var items []Item
	var failed int
	for _, tmpl := range r.feeds {
		feedURL := strings.ReplaceAll(tmpl, "{symbol}", ticker)
		feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			logger.WarnWithErr(ctx, "Failed to parse feed", err, "feed", feedURL)
			failed++
			continue
		}
		items = append(items, feedItems(feed, from, to)...)
	}

	if failed == len(r.feeds) {
		return nil, fmt.Errorf("all %d RSS feeds failed for %s", failed, ticker)
	}
	return items, nil
}

// feedItems converts feed entries in [from, to] to Items. Entries without a
// usable date are dropped since they cannot be ranked by recency.
func feedItems(feed *gofeed.Feed, from, to time.Time) []Item {
	source := strings.TrimSpace(feed.Title)
	if source == "" {
		source = "RSS"
	}

	items := make([]Item, 0, len(feed.Items))
	for _, fi := range feed.Items {
		ts := fi.PublishedParsed
		if ts == nil {
			ts = fi.UpdatedParsed
		}
		if ts == nil || ts.Before(from) || ts.After(to) {
			continue
		}
		title := strings.TrimSpace(fi.Title)
		if title == "" {
			continue
		}
		items = append(items, Item{
			Headline:  title,
			Source:    source,
			Timestamp: *ts,
			URL:       fi.Link,
			Summary:   fi.Description,
		})
	}
	return items
}
