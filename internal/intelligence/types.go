package intelligence

import (
	"math"
	"strings"
	"time"

	"equity-intel/internal/earnings"
	"equity-intel/internal/news"
	"equity-intel/internal/sentiment"
	"equity-intel/internal/ta"
)

// Request is one intelligence query from the application layer
type Request struct {
	Ticker     string               `json:"ticker"`
	Prediction string               `json:"prediction"`
	Indicators sentiment.Indicators `json:"indicators"`
	Confidence float64              `json:"confidence"`
	// Closes is an optional daily close history, oldest first, used for the
	// realized volatility section.
	Closes []float64 `json:"closes,omitempty"`
}

// ValidConfidence reports whether c is a finite percentage in [0, 100]
func ValidConfidence(c float64) bool {
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return false
	}
	return c >= 0 && c <= 100
}

// Normalized returns a copy with the ticker trimmed and upper-cased and the
// indicator map copied, so later caller mutation cannot leak into a report.
func (r Request) Normalized() Request {
	out := r
	out.Ticker = strings.ToUpper(strings.TrimSpace(r.Ticker))
	out.Prediction = strings.TrimSpace(r.Prediction)
	if r.Indicators != nil {
		out.Indicators = make(sentiment.Indicators, len(r.Indicators))
		for k, v := range r.Indicators {
			out.Indicators[k] = v
		}
	}
	if r.Closes != nil {
		out.Closes = append([]float64(nil), r.Closes...)
	}
	return out
}

// Report aggregates the three stage outputs for one request. It is built once
// and not modified afterwards.
type Report struct {
	Ticker      string           `json:"ticker"`
	Prediction  string           `json:"prediction"`
	Confidence  float64          `json:"confidence"`
	GeneratedAt time.Time        `json:"generated_at"`
	News        news.Result      `json:"news"`
	Earnings    earnings.Result  `json:"earnings"`
	Sentiment   sentiment.Result `json:"sentiment"`
	// Volatility is nil when the request carried too little price history
	Volatility *ta.VolatilityAnalysis `json:"volatility,omitempty"`
}
