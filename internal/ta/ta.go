package ta

import "math"

func SMA(closes []float64, n int) float64 {
	if len(closes) < n || n <= 0 {
		return math.NaN()
	}
	sum := 0.0
	for i := len(closes) - n; i < len(closes); i++ {
		sum += closes[i]
	}
	return sum / float64(n)
}

// EMA seeds with the SMA of the first n closes and smooths forward.
func EMA(closes []float64, n int) float64 {
	if len(closes) < n || n <= 0 {
		return math.NaN()
	}
	k := 2.0 / float64(n+1)
	ema := SMA(closes[:n], n)
	for _, c := range closes[n:] {
		ema = c*k + ema*(1-k)
	}
	return ema
}

func RSI(closes []float64, period int) float64 {
	if len(closes) < period+1 || period <= 0 {
		return math.NaN()
	}
	gain, loss := 0.0, 0.0
	for i := len(closes) - period; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	if loss == 0 {
		return 100.0
	}
	rs := (gain / float64(period)) / (loss / float64(period))
	return 100.0 - (100.0 / (1.0 + rs))
}

// MACD is EMA(fast) - EMA(slow).
func MACD(closes []float64, fast, slow int) float64 {
	if fast >= slow {
		return math.NaN()
	}
	return EMA(closes, fast) - EMA(closes, slow)
}

// Return is the percentage change of the last close over the previous one.
func Return(closes []float64) float64 {
	if len(closes) < 2 || closes[len(closes)-2] == 0 {
		return math.NaN()
	}
	prev := closes[len(closes)-2]
	return (closes[len(closes)-1] - prev) / prev * 100
}

// Indicators derives MA20, MA50, RSI(14), MACD(12,26) and Return from a close
// series, oldest first. Values that need more history than given are left out.
func Indicators(closes []float64) map[string]float64 {
	out := make(map[string]float64)
	put := func(key string, v float64) {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[key] = v
		}
	}
	put("MA20", SMA(closes, 20))
	put("MA50", SMA(closes, 50))
	put("RSI", RSI(closes, 14))
	put("MACD", MACD(closes, 12, 26))
	put("Return", Return(closes))
	return out
}
