package ta

import (
	"errors"
	"math"
)

// Realized volatility windows, in trading days
const (
	RVShort  = 30
	RVMedium = 60
	RVLong   = 90

	TradingDaysPerYear = 252
)

// minVolatilityRows is the number of rows with all three RV series defined
// that AnalyzeVolatility needs: a 10-day recent block and a 30-day prior block.
const minVolatilityRows = 40

var ErrInsufficientVolatilityData = errors.New("insufficient data for volatility analysis")

type VolatilityRegime string

const (
	RegimeExpansion   VolatilityRegime = "expansion"
	RegimeCompression VolatilityRegime = "compression"
	RegimeMixed       VolatilityRegime = "mixed"
)

type VolatilityTrend string

const (
	TrendIncreasing VolatilityTrend = "increasing"
	TrendDecreasing VolatilityTrend = "decreasing"
)

// VolatilityAnalysis summarises the 30/60/90 day realized volatility of a
// close series. All RV values are annualized percentages.
type VolatilityAnalysis struct {
	CurrentRV30    float64          `json:"current_rv30"`
	CurrentRV60    float64          `json:"current_rv60"`
	CurrentRV90    float64          `json:"current_rv90"`
	RecentRV30Avg  float64          `json:"recent_rv30_avg"`
	PriorRV30Avg   float64          `json:"prior_rv30_avg"`
	Trend          VolatilityTrend  `json:"trend"`
	Regime         VolatilityRegime `json:"regime"`
	RV30Percentile float64          `json:"rv30_percentile"`
	RV30RV90Spread float64          `json:"rv30_vs_rv90_spread"`
}

// LogReturns returns ln(c[i]/c[i-1]) aligned to closes; index 0 and any step
// touching a non-positive close are NaN.
func LogReturns(closes []float64) []float64 {
	out := make([]float64, len(closes))
	if len(out) > 0 {
		out[0] = math.NaN()
	}
	for i := 1; i < len(closes); i++ {
		if closes[i] <= 0 || closes[i-1] <= 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = math.Log(closes[i] / closes[i-1])
	}
	return out
}

// RealizedVolatility is the rolling sample standard deviation of daily log
// returns over window days, annualized and in percent. The series is aligned
// to closes; positions without a full window of returns are NaN.
func RealizedVolatility(closes []float64, window int) []float64 {
	out := make([]float64, len(closes))
	for i := range out {
		out[i] = math.NaN()
	}
	if window < 2 {
		return out
	}

	rets := LogReturns(closes)
	scale := math.Sqrt(TradingDaysPerYear) * 100
	for i := window; i < len(rets); i++ {
		out[i] = sampleStdDev(rets[i-window+1:i+1]) * scale
	}
	return out
}

// sampleStdDev uses n-1 in the denominator; any NaN input yields NaN.
func sampleStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}
	mean := 0.0
	for _, x := range xs {
		if math.IsNaN(x) {
			return math.NaN()
		}
		mean += x
	}
	mean /= float64(len(xs))

	ss := 0.0
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

// AnalyzeVolatility computes RV30/60/90 over the last year of closes (oldest
// first) and classifies the trend and regime. It needs at least 40 days on
// which all three series are defined, so roughly 130 closes.
func AnalyzeVolatility(closes []float64) (*VolatilityAnalysis, error) {
	rv30 := RealizedVolatility(closes, RVShort)
	rv60 := RealizedVolatility(closes, RVMedium)
	rv90 := RealizedVolatility(closes, RVLong)

	start := 0
	if len(closes) > TradingDaysPerYear {
		start = len(closes) - TradingDaysPerYear
	}

	var s30, s60, s90 []float64
	for i := start; i < len(closes); i++ {
		if math.IsNaN(rv30[i]) || math.IsNaN(rv60[i]) || math.IsNaN(rv90[i]) {
			continue
		}
		s30 = append(s30, rv30[i])
		s60 = append(s60, rv60[i])
		s90 = append(s90, rv90[i])
	}
	n := len(s30)
	if n < minVolatilityRows {
		return nil, ErrInsufficientVolatilityData
	}

	a := &VolatilityAnalysis{
		CurrentRV30:   s30[n-1],
		CurrentRV60:   s60[n-1],
		CurrentRV90:   s90[n-1],
		RecentRV30Avg: mean(s30[n-10:]),
		PriorRV30Avg:  mean(s30[n-40 : n-10]),
	}

	below := 0
	for _, v := range s30 {
		if v < a.CurrentRV30 {
			below++
		}
	}
	a.RV30Percentile = float64(below) / float64(n) * 100
	a.RV30RV90Spread = a.CurrentRV30 - a.CurrentRV90

	switch {
	case a.CurrentRV30 > a.CurrentRV60 && a.CurrentRV60 > a.CurrentRV90:
		a.Regime = RegimeExpansion
	case a.CurrentRV30 < a.CurrentRV60 && a.CurrentRV60 < a.CurrentRV90:
		a.Regime = RegimeCompression
	default:
		a.Regime = RegimeMixed
	}

	a.Trend = TrendDecreasing
	if a.RecentRV30Avg > a.PriorRV30Avg {
		a.Trend = TrendIncreasing
	}

	return a, nil
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
