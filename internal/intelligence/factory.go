package intelligence

import (
	"fmt"
	"time"

	"equity-intel/internal/api"
	"equity-intel/internal/earnings"
	"equity-intel/internal/finnhub"
	"equity-intel/internal/news"
	"equity-intel/internal/store"
)

// NewFromConfig wires the configured news and earnings sources into an
// orchestrator.
func NewFromConfig(cfg *store.Config, opts ...Option) (*Orchestrator, error) {
	if cfg == nil {
		cfg = store.Default()
	}

	fh := newFinnhubClient(cfg)

	newsSource, err := buildNewsFetcher(cfg, fh)
	if err != nil {
		return nil, err
	}
	earningsSource, err := buildEarningsFetcher(cfg, fh)
	if err != nil {
		return nil, err
	}

	opts = append([]Option{
		WithLookbackDays(cfg.News.LookbackDays),
		WithWindowDays(cfg.Earnings.WindowDays),
	}, opts...)

	return New(newsSource, earningsSource, opts...), nil
}

func newFinnhubClient(cfg *store.Config) *finnhub.Client {
	return finnhub.NewClient(cfg.APIKey(),
		finnhub.WithBaseURL(cfg.Finnhub.BaseURL),
		finnhub.WithTimeout(cfg.FinnhubTimeout()),
		finnhub.WithRateLimit(cfg.Finnhub.RateLimitPerSecond),
		finnhub.WithRetry(&api.RetryConfig{
			MaxAttempts: cfg.Finnhub.Retry.MaxAttempts,
			InitialWait: time.Duration(cfg.Finnhub.Retry.InitialWaitMs) * time.Millisecond,
			MaxWait:     time.Duration(cfg.Finnhub.Retry.MaxWaitMs) * time.Millisecond,
		}),
	)
}

func newsFetcherFor(cfg *store.Config, source string, fh *finnhub.Client) (news.Fetcher, error) {
	switch source {
	case store.SourceFinnhub:
		return finnhub.NewsFetcher(fh), nil
	case store.SourceRSS:
		return news.NewRSSFetcher(cfg.News.RSSFeeds, cfg.ScraperTimeout()), nil
	case store.SourceScrape:
		return news.NewScrapeFetcher(cfg.ScraperTimeout(), cfg.News.MaxArticles), nil
	case store.SourceMock:
		return mockNews(), nil
	default:
		return nil, fmt.Errorf("unsupported news source: %s", source)
	}
}

// buildNewsFetcher returns the primary source, chained with any configured
// fallbacks.
func buildNewsFetcher(cfg *store.Config, fh *finnhub.Client) (news.Fetcher, error) {
	primary, err := newsFetcherFor(cfg, cfg.News.Source, fh)
	if err != nil {
		return nil, err
	}
	if len(cfg.News.Fallback) == 0 {
		return primary, nil
	}

	chain := news.NewFallbackFetcher().Add(cfg.News.Source, primary)
	for _, name := range cfg.News.Fallback {
		if name == cfg.News.Source {
			continue
		}
		f, err := newsFetcherFor(cfg, name, fh)
		if err != nil {
			return nil, err
		}
		chain.Add(name, f)
	}
	return chain, nil
}

func buildEarningsFetcher(cfg *store.Config, fh *finnhub.Client) (earnings.Fetcher, error) {
	switch cfg.Earnings.Source {
	case store.SourceFinnhub:
		return finnhub.EarningsFetcher(fh), nil
	case store.SourceMock:
		return mockEarnings(), nil
	default:
		return nil, fmt.Errorf("unsupported earnings source: %s", cfg.Earnings.Source)
	}
}
