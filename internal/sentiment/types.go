package sentiment

import (
	"math"
	"strings"
)

// Label is the overall polarity of a headline set
type Label string

const (
	Positive Label = "Positive"
	Neutral  Label = "Neutral"
	Negative Label = "Negative"
)

// Threshold is the half-width of the neutral band around zero
const Threshold = 0.2

// Classify maps a score to its label. Every other polarity check in this
// package goes through the same band.
func Classify(score float64) Label {
	switch {
	case score > Threshold:
		return Positive
	case score < -Threshold:
		return Negative
	default:
		return Neutral
	}
}

// Direction is the direction of the trend prediction
type Direction string

const (
	Up   Direction = "UP"
	Down Direction = "DOWN"
)

// DirectionOf reads the direction from free-form prediction text such as
// "UP 📈". Anything without "UP" is DOWN.
func DirectionOf(prediction string) Direction {
	if strings.Contains(prediction, "UP") {
		return Up
	}
	return Down
}

// Aligned reports whether the sentiment polarity agrees with dir
func Aligned(dir Direction, score float64) bool {
	label := Classify(score)
	return (dir == Up && label == Positive) || (dir == Down && label == Negative)
}

// Conflicting reports whether the sentiment polarity opposes dir
func Conflicting(dir Direction, score float64) bool {
	label := Classify(score)
	return (dir == Up && label == Negative) || (dir == Down && label == Positive)
}

// Recognised indicator keys
const (
	KeyMA20   = "MA20"
	KeyMA50   = "MA50"
	KeyRSI    = "RSI"
	KeyMACD   = "MACD"
	KeyReturn = "Return"
	KeyVolume = "Volume"
)

// Indicators holds technical indicator values by name. Unrecognised keys are
// carried but ignored.
type Indicators map[string]float64

// Get returns the value for key and whether it is usable. Zero, NaN and
// infinities count as absent.
func (ind Indicators) Get(key string) (float64, bool) {
	v, ok := ind[key]
	if !ok || v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Result is the confidence overlay for one prediction
type Result struct {
	OverallSentiment  Label    `json:"overall_sentiment"`
	SentimentScore    float64  `json:"sentiment_score"`
	SupportiveFactors []string `json:"supportive_factors"`
	RiskFactors       []string `json:"risk_factors"`
	ConfidenceSummary string   `json:"confidence_summary"`
	Explanation       string   `json:"explanation"`
}
