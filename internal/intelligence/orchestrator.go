package intelligence

import (
	"context"
	"time"

	"equity-intel/internal/earnings"
	"equity-intel/internal/logger"
	"equity-intel/internal/news"
	"equity-intel/internal/sentiment"
	"equity-intel/internal/ta"
	"equity-intel/internal/trace"
)

// Orchestrator runs news, earnings and sentiment in sequence. It holds no
// per-request state, so one instance serves concurrent requests.
type Orchestrator struct {
	news         *news.Stage
	earnings     *earnings.Stage
	sentiment    *sentiment.Stage
	lookbackDays int
	now          func() time.Time
}

// Option configures an Orchestrator
type Option func(*options)

type options struct {
	now          func() time.Time
	lookbackDays int
	windowDays   int
}

// WithClock fixes the time source for every stage
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithLookbackDays sets the news window
func WithLookbackDays(days int) Option {
	return func(o *options) {
		o.lookbackDays = days
	}
}

// WithWindowDays sets the ± earnings calendar window
func WithWindowDays(days int) Option {
	return func(o *options) {
		o.windowDays = days
	}
}

// New creates an orchestrator over the two data sources. Either may be nil,
// in which case its stage reports "no data".
func New(newsSource news.Fetcher, earningsSource earnings.Fetcher, opts ...Option) *Orchestrator {
	o := options{
		now:          time.Now,
		lookbackDays: news.DefaultLookbackDays,
		windowDays:   earnings.DefaultWindowDays,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Orchestrator{
		news:         news.NewStage(newsSource, news.WithClock(o.now)),
		earnings:     earnings.NewStage(earningsSource, earnings.WithClock(o.now), earnings.WithWindowDays(o.windowDays)),
		sentiment:    sentiment.NewStage(),
		lookbackDays: o.lookbackDays,
		now:          o.now,
	}
}

// RunIntelligence always returns a complete report; upstream failures show up
// as empty headlines and LOW risk.
func (o *Orchestrator) RunIntelligence(ctx context.Context, req Request) *Report {
	req = req.Normalized()

	op := logger.StartOperation(ctx, "intelligence.run", "ticker", req.Ticker, "prediction", req.Prediction)
	ctx = op.GetContext()

	newsCtx, span := trace.StartSpan(ctx, "intelligence.news")
	newsRes := o.news.Run(newsCtx, req.Ticker, o.lookbackDays)
	span.End()

	earnCtx, span := trace.StartSpan(ctx, "intelligence.earnings")
	earnRes := o.earnings.Run(earnCtx, req.Ticker)
	span.End()

	sentCtx, span := trace.StartSpan(ctx, "intelligence.sentiment")
	sentRes := o.sentiment.Run(sentCtx, newsRes, earnRes, req.Prediction, req.Indicators, req.Confidence)
	span.End()

	vol := o.volatility(ctx, req)

	op.End(
		"headlines", len(newsRes.TopHeadlines),
		"risk_level", string(earnRes.RiskLevel),
		"sentiment", string(sentRes.OverallSentiment),
		"volatility", vol != nil)

	return &Report{
		Ticker:      req.Ticker,
		Prediction:  req.Prediction,
		Confidence:  req.Confidence,
		GeneratedAt: o.now(),
		News:        newsRes,
		Earnings:    earnRes,
		Sentiment:   sentRes,
		Volatility:  vol,
	}
}

// volatility analyses req.Closes when present. Too short a history is logged
// and left out of the report.
func (o *Orchestrator) volatility(ctx context.Context, req Request) *ta.VolatilityAnalysis {
	if len(req.Closes) == 0 {
		return nil
	}

	ctx, span := trace.StartSpan(ctx, "intelligence.volatility")
	defer span.End()

	analysis, err := ta.AnalyzeVolatility(req.Closes)
	if err != nil {
		logger.WarnWithErr(ctx, "Skipping volatility analysis", err, "ticker", req.Ticker, "closes", len(req.Closes))
		return nil
	}
	logger.Debug(ctx, "Volatility analysed",
		"ticker", req.Ticker,
		"regime", string(analysis.Regime),
		"trend", string(analysis.Trend),
		"rv30", analysis.CurrentRV30)
	return analysis
}
