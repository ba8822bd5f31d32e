package sentiment

import (
	"fmt"
	"strings"
)

const (
	citationMaxRunes = 80
	citationLimit    = 3
)

// Explanation renders the markdown sentiment/indicator write-up. Sections
// always appear in the same order; indicator lines are skipped when absent.
func Explanation(in Input) string {
	var lines []string

	switch Classify(in.Score) {
	case Positive:
		lines = append(lines, "**Sentiment Analysis:** Positive news sentiment detected.")
	case Negative:
		lines = append(lines, "**Sentiment Analysis:** Negative news sentiment detected.")
	default:
		lines = append(lines, "**Sentiment Analysis:** Neutral news sentiment.")
	}

	if len(in.News.TopHeadlines) > 0 {
		lines = append(lines, "\n**Recent Headlines:**")
		for i, h := range in.News.TopHeadlines {
			if i == citationLimit {
				break
			}
			lines = append(lines, fmt.Sprintf("- %s... [%s, %s]",
				truncateRunes(h.Headline, citationMaxRunes), h.Source, h.Timestamp.Format("2006-01-02 15:04")))
		}
	}

	lines = append(lines, fmt.Sprintf("\n**Event Risk:** %s - %s", in.Earnings.RiskLevel, in.Earnings.RiskReason))

	lines = append(lines, "\n**Technical Indicators:**")
	if rsi, ok := in.Indicators.Get(KeyRSI); ok {
		switch {
		case rsi > 70:
			lines = append(lines, fmt.Sprintf("- RSI at %.1f suggests overbought conditions 🐂", rsi))
		case rsi < 30:
			lines = append(lines, fmt.Sprintf("- RSI at %.1f suggests oversold conditions 🐻", rsi))
		default:
			lines = append(lines, fmt.Sprintf("- RSI at %.1f is in neutral range", rsi))
		}
	}

	ma20, ok20 := in.Indicators.Get(KeyMA20)
	ma50, ok50 := in.Indicators.Get(KeyMA50)
	if ok20 && ok50 {
		if ma20 > ma50 {
			lines = append(lines, fmt.Sprintf("- MA20 (%.2f) above MA50 (%.2f) - bullish signal", ma20, ma50))
		} else {
			lines = append(lines, fmt.Sprintf("- MA20 (%.2f) below MA50 (%.2f) - bearish signal", ma20, ma50))
		}
	}

	lines = append(lines, "\n**Model Prediction:** "+in.Prediction)

	return strings.Join(lines, "\n")
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
