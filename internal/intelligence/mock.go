package intelligence

import (
	"context"
	"time"

	"equity-intel/internal/earnings"
	"equity-intel/internal/news"
)

// mockNews returns a fixed set of headlines dated relative to the end of the
// requested window. Used by source MOCK for demos and offline runs.
func mockNews() news.Fetcher {
	return news.FetcherFunc(func(ctx context.Context, ticker string, from, to time.Time) ([]news.Item, error) {
		at := func(hours int) time.Time { return to.Add(-time.Duration(hours) * time.Hour) }
		return []news.Item{
			{Headline: ticker + " beats quarterly earnings estimates on strong cloud growth", Source: "MockWire", Timestamp: at(3), URL: "https://example.com/mock/1"},
			{Headline: "Analyst upgrades " + ticker + " with higher price target", Source: "MockStreet", Timestamp: at(9), URL: "https://example.com/mock/2"},
			{Headline: ticker + " to unveil new product line next month", Source: "MockWire", Timestamp: at(20), URL: "https://example.com/mock/3"},
			{Headline: "Fed signals patience as inflation cools", Source: "MockMacro", Timestamp: at(30), URL: "https://example.com/mock/4"},
			{Headline: ticker + " beats quarterly earnings estimates on strong cloud growth", Source: "MockSyndicate", Timestamp: at(31), URL: "https://example.com/mock/5"},
		}, nil
	})
}

// mockEarnings reports an earnings date five days after the middle of the
// requested window.
func mockEarnings() earnings.Fetcher {
	return earnings.FetcherFunc(func(ctx context.Context, ticker string, from, to time.Time) ([]earnings.Event, error) {
		mid := from.Add(to.Sub(from) / 2)
		est := 1.42
		return []earnings.Event{
			{Symbol: ticker, Date: mid.AddDate(0, 0, 5).Format(earnings.DateLayout), EPSEstimate: &est},
		}, nil
	})
}
