package sentiment

import (
	"context"

	"equity-intel/internal/earnings"
	"equity-intel/internal/logger"
	"equity-intel/internal/news"
)

// Stage builds the confidence overlay from the news and earnings results.
// It has no dependencies and keeps no state between runs.
type Stage struct{}

func NewStage() *Stage {
	return &Stage{}
}

// Run scores the top headlines and derives every overlay field from that one
// score. Missing indicators skip their rules.
func (s *Stage) Run(ctx context.Context, n news.Result, e earnings.Result, prediction string, indicators Indicators, confidence float64) Result {
	score := Score(n.Headlines())
	in := Input{
		Score:      score,
		News:       n,
		Earnings:   e,
		Prediction: prediction,
		Indicators: indicators,
		Confidence: confidence,
	}

	res := Result{
		OverallSentiment:  Classify(score),
		SentimentScore:    score,
		SupportiveFactors: SupportiveFactors(in),
		RiskFactors:       RiskFactors(in),
		ConfidenceSummary: ConfidenceSummary(in),
		Explanation:       Explanation(in),
	}

	logger.Signal(ctx, n.Ticker, prediction, string(res.OverallSentiment), score, confidence,
		"supportive", len(res.SupportiveFactors),
		"risks", len(res.RiskFactors))
	return res
}
