package sentiment

import (
	"fmt"
	"strings"

	"equity-intel/internal/earnings"
	"equity-intel/internal/news"
)

const (
	DefaultSupportive = "Limited supportive factors identified"
	DefaultRisk       = "No significant risk factors identified"
)

var legalKeywords = [...]string{"lawsuit", "investigation", "regulatory"}

// Input bundles everything the overlay rules read
type Input struct {
	Score      float64
	News       news.Result
	Earnings   earnings.Result
	Prediction string
	Indicators Indicators
	Confidence float64
}

func (in Input) direction() Direction {
	return DirectionOf(in.Prediction)
}

// SupportiveFactors lists the conditions that strengthen confidence in the
// prediction, in rule order.
func SupportiveFactors(in Input) []string {
	var out []string
	dir := in.direction()

	if in.Confidence > 70 {
		out = append(out, fmt.Sprintf("Model shows strong confidence at %.1f%%", in.Confidence))
	}

	if Aligned(dir, in.Score) {
		if dir == Up {
			out = append(out, "Positive news sentiment aligns with upward model signal")
		} else {
			out = append(out, "Negative news sentiment aligns with downward model signal")
		}
	}

	ma20, ok20 := in.Indicators.Get(KeyMA20)
	ma50, ok50 := in.Indicators.Get(KeyMA50)
	if ok20 && ok50 {
		if dir == Up && ma20 > ma50 {
			out = append(out, "MA20 above MA50 supports upward trend")
		} else if dir == Down && ma20 < ma50 {
			out = append(out, "MA20 below MA50 supports downward trend")
		}
	}

	if rsi, ok := in.Indicators.Get(KeyRSI); ok {
		if dir == Up && rsi > 40 && rsi < 70 {
			out = append(out, fmt.Sprintf("RSI at %.1f suggests room for upward continuation", rsi))
		} else if dir == Down && rsi > 30 && rsi < 60 {
			out = append(out, fmt.Sprintf("RSI at %.1f suggests room for downward continuation", rsi))
		}
	}

	if in.Earnings.RiskLevel == earnings.RiskLow {
		out = append(out, "Low event risk provides stable environment for current trend")
	}

	for _, h := range in.News.TopHeadlines {
		if strings.Contains(strings.ToLower(h.Headline), "upgrade") {
			out = append(out, fmt.Sprintf("Analyst upgrade may support confidence [%s]", h.Source))
			break
		}
	}

	if len(out) == 0 {
		return []string{DefaultSupportive}
	}
	return out
}

// RiskFactors lists the conditions that weaken confidence in the prediction,
// in rule order.
func RiskFactors(in Input) []string {
	var out []string
	dir := in.direction()

	if in.Confidence < 60 {
		out = append(out, fmt.Sprintf("Model confidence at %.1f%% suggests higher uncertainty", in.Confidence))
	}

	switch in.Earnings.RiskLevel {
	case earnings.RiskHigh:
		out = append(out, "High event risk: "+in.Earnings.RiskReason)
	case earnings.RiskMedium:
		out = append(out, "Moderate event risk: "+in.Earnings.RiskReason)
	}

	if Conflicting(dir, in.Score) {
		if dir == Up {
			out = append(out, "Negative news sentiment conflicts with upward model signal")
		} else {
			out = append(out, "Positive news sentiment conflicts with downward model signal")
		}
	}

	if rsi, ok := in.Indicators.Get(KeyRSI); ok {
		if rsi > 70 {
			out = append(out, fmt.Sprintf("RSI at %.1f indicates overbought conditions, potential reversal risk", rsi))
		} else if rsi < 30 {
			out = append(out, fmt.Sprintf("RSI at %.1f indicates oversold conditions, potential reversal risk", rsi))
		}
	}

	for _, h := range in.News.TopHeadlines {
		if containsAny(strings.ToLower(h.Headline), legalKeywords[:]) {
			out = append(out, fmt.Sprintf("Legal/regulatory concerns may introduce volatility [%s]", h.Source))
			break
		}
	}

	if Classify(in.Score) == Neutral && len(in.News.TopHeadlines) > 0 {
		out = append(out, "Mixed news sentiment creates uncertain environment")
	}

	if len(out) == 0 {
		return []string{DefaultRisk}
	}
	return out
}

// ConfidenceSummary renders the one-paragraph analyst note on how news and
// event risk bear on the model's confidence.
func ConfidenceSummary(in Input) string {
	parts := []string{
		fmt.Sprintf("The model predicts %s with %.1f%% confidence.", in.Prediction, in.Confidence),
	}

	if len(in.News.TopHeadlines) > 0 {
		top := in.News.TopHeadlines[0]
		desc := strings.ToLower(string(Classify(in.Score)))
		parts = append(parts, fmt.Sprintf("Recent %s news coverage [%s, %s]", desc, top.Source, top.Timestamp.Format("2006-01-02")))

		dir := in.direction()
		switch {
		case Aligned(dir, in.Score):
			parts = append(parts, "may support the current signal.")
		case Conflicting(dir, in.Score):
			parts = append(parts, "introduces conflicting signals that could weaken confidence.")
		default:
			parts = append(parts, "provides limited directional insight.")
		}
	}

	switch in.Earnings.RiskLevel {
	case earnings.RiskHigh:
		parts = append(parts, fmt.Sprintf("However, %s, which may introduce significant volatility and reduce confidence in short-term signals.",
			strings.ToLower(in.Earnings.RiskReason)))
	case earnings.RiskMedium:
		parts = append(parts, in.Earnings.RiskReason+", which could introduce moderate uncertainty.")
	}

	return strings.Join(parts, " ")
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
