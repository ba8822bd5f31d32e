package news

import (
	"context"
	"errors"
	"time"

	"equity-intel/internal/logger"
)

// StaticFetcher serves a fixed item set, filtered to the requested window.
// Used for fixtures and tests.
type StaticFetcher struct {
	Items map[string][]Item
	Err   error
}

func (f *StaticFetcher) FetchNews(ctx context.Context, ticker string, from, to time.Time) ([]Item, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	var out []Item
	for _, it := range f.Items[ticker] {
		if it.Timestamp.Before(from) || it.Timestamp.After(to) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

// FallbackFetcher tries each source in order and returns the first non-empty
// result. Errors from earlier sources are only returned if every source fails.
type FallbackFetcher struct {
	sources []namedFetcher
}

type namedFetcher struct {
	name    string
	fetcher Fetcher
}

// NewFallbackFetcher creates an empty chain; add sources with Add.
func NewFallbackFetcher() *FallbackFetcher {
	return &FallbackFetcher{}
}

// Add appends a source to the chain
func (f *FallbackFetcher) Add(name string, fetcher Fetcher) *FallbackFetcher {
	f.sources = append(f.sources, namedFetcher{name: name, fetcher: fetcher})
	return f
}

func (f *FallbackFetcher) FetchNews(ctx context.Context, ticker string, from, to time.Time) ([]Item, error) {
	var errs []error
	for _, src := range f.sources {
		items, err := src.fetcher.FetchNews(ctx, ticker, from, to)
		if err != nil {
			logger.WarnWithErr(ctx, "News source failed", err, "source", src.name, "ticker", ticker)
			errs = append(errs, err)
			continue
		}
		if len(items) > 0 {
			return items, nil
		}
		logger.Info(ctx, "No articles from source, trying next", "source", src.name, "ticker", ticker)
	}
	if len(errs) == len(f.sources) && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return nil, nil
}
