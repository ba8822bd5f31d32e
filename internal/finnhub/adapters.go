package finnhub

import (
	"context"
	"time"

	"equity-intel/internal/earnings"
	"equity-intel/internal/news"
)

const unknownSource = "Unknown"

// NewsFetcher exposes the client as a news.Fetcher.
func NewsFetcher(c *Client) news.Fetcher {
	return news.FetcherFunc(func(ctx context.Context, ticker string, from, to time.Time) ([]news.Item, error) {
		raw, err := c.GetCompanyNews(ctx, ticker, from, to)
		if err != nil {
			return nil, err
		}
		items := make([]news.Item, 0, len(raw))
		for _, n := range raw {
			source := n.Source
			if source == "" {
				source = unknownSource
			}
			items = append(items, news.Item{
				Headline:  n.Headline,
				Source:    source,
				Timestamp: n.Time(),
				URL:       n.URL,
				Summary:   n.Summary,
			})
		}
		return items, nil
	})
}

// EarningsFetcher exposes the client as an earnings.Fetcher. Rows for other
// symbols are dropped.
func EarningsFetcher(c *Client) earnings.Fetcher {
	return earnings.FetcherFunc(func(ctx context.Context, ticker string, from, to time.Time) ([]earnings.Event, error) {
		rows, err := c.GetEarningsCalendar(ctx, ticker, from, to)
		if err != nil {
			return nil, err
		}
		var events []earnings.Event
		for _, r := range rows {
			if r.Symbol != ticker {
				continue
			}
			events = append(events, earnings.Event{
				Symbol:      r.Symbol,
				Date:        r.Date,
				EPSEstimate: r.EPSEstimate,
				EPSActual:   r.EPSActual,
			})
		}
		return events, nil
	})
}
