package sentiment

import "strings"

var positiveKeywords = [...]string{
	"beat", "growth", "upgrade", "record", "surge", "rally", "gain",
	"strong", "bullish", "outperform", "buy", "positive", "rise",
}

var negativeKeywords = [...]string{
	"miss", "lawsuit", "downgrade", "risk", "decline", "fall", "drop",
	"weak", "bearish", "underperform", "sell", "negative", "loss",
}

// maxHitsPerHeadline normalises the raw keyword balance into [-1, 1]
const maxHitsPerHeadline = 3

// headlineBalance counts the distinct positive keywords present in headline
// minus the distinct negative ones.
func headlineBalance(headline string) int {
	lower := strings.ToLower(headline)
	n := 0
	for _, kw := range positiveKeywords {
		if strings.Contains(lower, kw) {
			n++
		}
	}
	for _, kw := range negativeKeywords {
		if strings.Contains(lower, kw) {
			n--
		}
	}
	return n
}

// Score returns the keyword sentiment of headlines in [-1, 1]. No headlines
// scores exactly 0.
func Score(headlines []string) float64 {
	if len(headlines) == 0 {
		return 0.0
	}
	total := 0
	for _, h := range headlines {
		total += headlineBalance(h)
	}
	score := float64(total) / float64(maxHitsPerHeadline*len(headlines))
	if score > 1 {
		return 1
	}
	if score < -1 {
		return -1
	}
	return score
}
