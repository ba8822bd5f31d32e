package intelobs

import (
	"context"
	"time"

	"equity-intel/internal/intelligence"
	"equity-intel/internal/interfaces"
	"equity-intel/internal/logger"
	"equity-intel/internal/trace"
)

// observableRunner wraps IntelligenceRunner with logging and tracing
type observableRunner struct {
	inner interfaces.IntelligenceRunner
}

// Wrap wraps an IntelligenceRunner with observability middleware
func Wrap(runner interfaces.IntelligenceRunner) interfaces.IntelligenceRunner {
	return &observableRunner{inner: runner}
}

// RunIntelligence wraps the RunIntelligence method with logging and tracing
func (o *observableRunner) RunIntelligence(ctx context.Context, req intelligence.Request) *intelligence.Report {
	ctx, span := trace.StartSpan(ctx, "intelligence.RunIntelligence")
	defer span.End()

	fields := trace.GetTraceFields(ctx)
	fields["ticker"] = req.Ticker
	fields["prediction"] = req.Prediction
	fields["confidence"] = req.Confidence
	fields["indicator_count"] = len(req.Indicators)

	logger.InfoSkip(ctx, 1, "Starting intelligence run", fields)
	start := time.Now()

	report := o.inner.RunIntelligence(ctx, req)

	fields["duration_ms"] = time.Since(start).Milliseconds()

	if report == nil {
		logger.ErrorSkip(ctx, 1, "Intelligence run returned no report", fields)
		return nil
	}

	fields["headline_count"] = len(report.News.TopHeadlines)
	fields["total_news"] = report.News.TotalCount
	fields["risk_level"] = string(report.Earnings.RiskLevel)
	fields["sentiment"] = string(report.Sentiment.OverallSentiment)
	fields["sentiment_score"] = report.Sentiment.SentimentScore
	fields["risk_factor_count"] = len(report.Sentiment.RiskFactors)

	logger.InfoSkip(ctx, 1, "Intelligence run completed", fields)

	return report
}
