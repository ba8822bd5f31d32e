package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equity-intel/internal/earnings"
	"equity-intel/internal/intelligence"
	"equity-intel/internal/news"
	"equity-intel/internal/sentiment"
	"equity-intel/internal/ta"
)

var testNow = time.Date(2026, 10, 16, 15, 0, 0, 0, time.UTC)

func sampleReport() *intelligence.Report {
	date := "2026-10-18"
	est := 1.5
	return &intelligence.Report{
		Ticker:      "XYZ",
		Prediction:  "UP",
		Confidence:  80,
		GeneratedAt: testNow,
		News: news.Result{
			Ticker: "XYZ",
			TopHeadlines: []news.TaggedItem{
				news.NewTaggedItem(news.Item{Headline: "XYZ beats earnings estimates", Source: "Reuters", Timestamp: testNow, URL: "https://example.com/a"}),
			},
			TotalCount: 3,
		},
		Earnings: earnings.Result{
			EarningsDate: &date,
			EPSEstimate:  &est,
			RiskLevel:    earnings.RiskHigh,
			RiskReason:   "Earnings in 2 day(s) - expect high volatility",
		},
		Sentiment: sentiment.Result{
			OverallSentiment:  sentiment.Positive,
			SentimentScore:    0.33,
			SupportiveFactors: []string{"Model shows strong confidence at 80.0%"},
			RiskFactors:       []string{"High event risk: Earnings in 2 day(s) - expect high volatility"},
			ConfidenceSummary: "The model predicts UP with 80.0% confidence.",
			Explanation:       "**Sentiment Analysis:** Positive news sentiment detected.",
		},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, "TEXT": FormatText, "": FormatText, "md": FormatMarkdown, "markdown": FormatMarkdown} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestGenerateText(t *testing.T) {
	out, err := NewReporter("").Generate(sampleReport(), FormatText)
	require.NoError(t, err)

	assert.Contains(t, out, "EQUITY INTELLIGENCE REPORT - XYZ")
	assert.Contains(t, out, "Prediction: UP (80.0% confidence)")
	assert.Contains(t, out, "NEWS (3 unique, top 1)")
	assert.Contains(t, out, "1. [EARNINGS] XYZ beats earnings estimates")
	assert.Contains(t, out, "Earnings Date: 2026-10-18")
	assert.Contains(t, out, "EPS Estimate: 1.50")
	assert.Contains(t, out, "Risk Level: HIGH")
	assert.Contains(t, out, "SENTIMENT: Positive (+0.33)")
	assert.True(t, strings.Index(out, "NEWS") < strings.Index(out, "EARNINGS EVENT RISK"))
	assert.True(t, strings.Index(out, "EARNINGS EVENT RISK") < strings.Index(out, "SENTIMENT:"))
}

func TestGenerateJSON(t *testing.T) {
	out, err := NewReporter("").Generate(sampleReport(), FormatJSON)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "XYZ", decoded["ticker"])
	earn := decoded["earnings"].(map[string]any)
	assert.Equal(t, "HIGH", earn["risk_level"])
	assert.Equal(t, "2026-10-18", earn["earnings_date"])
}

func TestGenerateMarkdown(t *testing.T) {
	out, err := NewReporter("").Generate(sampleReport(), FormatMarkdown)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# XYZ Intelligence Report"))
	assert.Contains(t, out, "- High event risk: Earnings in 2 day(s) - expect high volatility")
	assert.Contains(t, out, "**Sentiment Analysis:** Positive news sentiment detected.")
}

func TestGenerateRejectsUnknownFormat(t *testing.T) {
	_, err := NewReporter("").Generate(sampleReport(), Format("csv"))
	assert.Error(t, err)
	_, err = NewReporter("").Generate(nil, FormatText)
	assert.Error(t, err)
}

func TestSaveReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	path, err := NewReporter(dir).SaveReport(sampleReport(), FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "XYZ_intel_2026-10-16_15-00-00.md"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "# XYZ Intelligence Report")
}

func sampleVolatility() *ta.VolatilityAnalysis {
	return &ta.VolatilityAnalysis{
		CurrentRV30:    42.5,
		CurrentRV60:    31.2,
		CurrentRV90:    28.0,
		RecentRV30Avg:  40.1,
		PriorRV30Avg:   25.3,
		Trend:          ta.TrendIncreasing,
		Regime:         ta.RegimeExpansion,
		RV30Percentile: 91.2,
		RV30RV90Spread: 14.5,
	}
}

func TestVolatilitySectionOmittedWithoutAnalysis(t *testing.T) {
	out, err := NewReporter("").Generate(sampleReport(), FormatText)
	require.NoError(t, err)
	assert.NotContains(t, out, "REALIZED VOLATILITY")

	md, err := NewReporter("").Generate(sampleReport(), FormatMarkdown)
	require.NoError(t, err)
	assert.NotContains(t, md, "Realized Volatility Analysis")
}

func TestGenerateTextWithVolatility(t *testing.T) {
	rep := sampleReport()
	rep.Volatility = sampleVolatility()

	out, err := NewReporter("").Generate(rep, FormatText)
	require.NoError(t, err)
	assert.Contains(t, out, "REALIZED VOLATILITY: EXPANSION, INCREASING")
	assert.Contains(t, out, "RV30: 42.50%  RV60: 31.20%  RV90: 28.00%")
	assert.Contains(t, out, "RV30 is ABOVE RV90 (spread +14.50%), 91.2th percentile over the past year")
	assert.Contains(t, out, "RV30 vs RV90 spread of +14.50% suggests elevated near-term uncertainty")
	assert.Contains(t, out, "Short-term volatility trend is increasing, potentially signaling mean reversion opportunity")
	assert.Contains(t, out, "defined-risk debit spreads")
	assert.True(t, strings.Index(out, "SENTIMENT:") < strings.Index(out, "REALIZED VOLATILITY"))
}

func TestGenerateMarkdownWithVolatility(t *testing.T) {
	rep := sampleReport()
	rep.Volatility = &ta.VolatilityAnalysis{
		CurrentRV30:    18.0,
		CurrentRV60:    21.0,
		CurrentRV90:    24.0,
		RecentRV30Avg:  17.5,
		PriorRV30Avg:   20.0,
		Trend:          ta.TrendDecreasing,
		Regime:         ta.RegimeCompression,
		RV30Percentile: 12.0,
		RV30RV90Spread: -6.0,
	}

	out, err := NewReporter("").Generate(rep, FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, out, "## Realized Volatility Analysis: XYZ")
	assert.Contains(t, out, "**Short-term Trend:** DECREASING")
	assert.Contains(t, out, "- RV30 is BELOW RV90")
	assert.Contains(t, out, "**Volatility Environment:** COMPRESSION")
	assert.Contains(t, out, "- Market appears to be stabilizing or entering lower volatility phase")
	assert.Contains(t, out, "- RV30 vs RV90 spread of -6.00% indicates relatively stable conditions")
	assert.Contains(t, out, "- Current RV30 at 12.0th percentile appears subdued")
	assert.Contains(t, out, "neutral income structures or credit strategies")
	assert.Contains(t, out, "**Disclaimer:**")
}

func TestGenerateJSONWithVolatility(t *testing.T) {
	rep := sampleReport()
	rep.Volatility = sampleVolatility()

	out, err := NewReporter("").Generate(rep, FormatJSON)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	vol := decoded["volatility"].(map[string]any)
	assert.Equal(t, "expansion", vol["regime"])
	assert.Equal(t, 14.5, vol["rv30_vs_rv90_spread"])
}
