package news

import (
	"context"
	"time"

	"equity-intel/internal/logger"
)

// DefaultLookbackDays is the news window used when the caller passes <= 0
const DefaultLookbackDays = 7

// Stage fetches, deduplicates, tags and ranks news for a ticker
type Stage struct {
	fetcher Fetcher
	now     func() time.Time
}

// StageOption configures a Stage
type StageOption func(*Stage)

// WithClock overrides the time source used for the fetch window
func WithClock(now func() time.Time) StageOption {
	return func(s *Stage) {
		s.now = now
	}
}

// NewStage creates a news ingestion stage over fetcher
func NewStage(fetcher Fetcher, opts ...StageOption) *Stage {
	s := &Stage{
		fetcher: fetcher,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run never fails: a fetch error or an empty fetch yields an empty Result.
func (s *Stage) Run(ctx context.Context, ticker string, lookbackDays int) Result {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	empty := Result{Ticker: ticker, TopHeadlines: []TaggedItem{}, TotalCount: 0}

	if s.fetcher == nil {
		return empty
	}

	to := s.now()
	from := to.AddDate(0, 0, -lookbackDays)

	raw, err := s.fetcher.FetchNews(ctx, ticker, from, to)
	if err != nil {
		logger.WarnWithErr(ctx, "News fetch failed, continuing without headlines", err, "ticker", ticker)
		return empty
	}
	if len(raw) == 0 {
		logger.Info(ctx, "No news found", "ticker", ticker, "lookback_days", lookbackDays)
		return empty
	}

	unique := Dedup(raw)

	tagged := make([]TaggedItem, 0, len(unique))
	for _, it := range unique {
		it.Summary = CleanSummary(it.Summary)
		tagged = append(tagged, NewTaggedItem(it))
	}

	top := Rank(tagged)

	logger.Info(ctx, "News ingested",
		"ticker", ticker,
		"fetched", len(raw),
		"unique", len(unique),
		"top", len(top))

	return Result{
		Ticker:       ticker,
		TopHeadlines: top,
		TotalCount:   len(unique),
	}
}
