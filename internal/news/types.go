package news

import (
	"context"
	"time"
)

// Item is a raw news item as supplied by a Fetcher
type Item struct {
	Headline  string    `json:"headline"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
	URL       string    `json:"url"`
	Summary   string    `json:"summary"`
}

// ReasonTag classifies the topical driver of a headline
type ReasonTag string

const (
	TagEarnings   ReasonTag = "earnings"
	TagProduct    ReasonTag = "product"
	TagAnalyst    ReasonTag = "analyst"
	TagMacro      ReasonTag = "macro"
	TagRegulatory ReasonTag = "regulatory"
	TagOther      ReasonTag = "other"
)

// Priority reports whether items with this tag are ranked ahead of the rest.
func (t ReasonTag) Priority() bool {
	return t == TagEarnings || t == TagAnalyst
}

// TaggedItem is an Item with its reason tag. Build it with NewTaggedItem so the
// tag always comes from Tag.
type TaggedItem struct {
	Item
	ReasonTag ReasonTag `json:"reason_tag"`
}

// NewTaggedItem tags item once.
func NewTaggedItem(item Item) TaggedItem {
	return TaggedItem{Item: item, ReasonTag: Tag(item.Headline)}
}

// Result is the output of the ingestion stage
type Result struct {
	Ticker       string       `json:"ticker"`
	TopHeadlines []TaggedItem `json:"top_headlines"`
	TotalCount   int          `json:"total_count"` // after dedup, before truncation
}

// Headlines returns the headline texts of the top items, in rank order.
func (r Result) Headlines() []string {
	out := make([]string, 0, len(r.TopHeadlines))
	for _, h := range r.TopHeadlines {
		out = append(out, h.Headline)
	}
	return out
}

// Fetcher supplies raw news for a ticker over [from, to]. Implementations may
// return an error; the stage treats any error as "no news".
type Fetcher interface {
	FetchNews(ctx context.Context, ticker string, from, to time.Time) ([]Item, error)
}

// FetcherFunc adapts a function to Fetcher
type FetcherFunc func(ctx context.Context, ticker string, from, to time.Time) ([]Item, error)

func (f FetcherFunc) FetchNews(ctx context.Context, ticker string, from, to time.Time) ([]Item, error) {
	return f(ctx, ticker, from, to)
}
