package ta

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func TestSMA(t *testing.T) {
	assert.Equal(t, 4.0, SMA([]float64{1, 2, 3, 4, 5}, 3))
	assert.True(t, math.IsNaN(SMA([]float64{1, 2}, 3)))
	assert.True(t, math.IsNaN(SMA([]float64{1, 2}, 0)))
}

func TestEMAOfFlatSeriesIsFlat(t *testing.T) {
	assert.InDelta(t, 10.0, EMA(series(30, 10, 0), 12), 1e-9)
	assert.True(t, math.IsNaN(EMA([]float64{1}, 2)))
}

func TestRSI(t *testing.T) {
	assert.Equal(t, 100.0, RSI(series(20, 1, 1), 14))
	assert.InDelta(t, 0.0, RSI(series(20, 100, -1), 14), 1e-9)
	assert.True(t, math.IsNaN(RSI(series(14, 1, 1), 14)))

	// alternating +1/-1 moves balance out
	closes := []float64{10}
	for i := 0; i < 14; i++ {
		if i%2 == 0 {
			closes = append(closes, closes[len(closes)-1]+1)
		} else {
			closes = append(closes, closes[len(closes)-1]-1)
		}
	}
	assert.InDelta(t, 50.0, RSI(closes, 14), 1e-9)
}

func TestMACDSign(t *testing.T) {
	assert.Greater(t, MACD(series(40, 100, 1), 12, 26), 0.0)
	assert.Less(t, MACD(series(40, 100, -1), 12, 26), 0.0)
	assert.True(t, math.IsNaN(MACD(series(40, 100, 1), 26, 12)))
}

func TestReturn(t *testing.T) {
	assert.InDelta(t, 10.0, Return([]float64{50, 100, 110}), 1e-9)
	assert.True(t, math.IsNaN(Return([]float64{1})))
	assert.True(t, math.IsNaN(Return([]float64{0, 1})))
}

func TestIndicators(t *testing.T) {
	ind := Indicators(series(60, 100, 1))
	assert.InDelta(t, 149.5, ind["MA20"], 1e-9)
	assert.InDelta(t, 134.5, ind["MA50"], 1e-9)
	assert.Equal(t, 100.0, ind["RSI"])
	assert.Contains(t, ind, "MACD")
	assert.InDelta(t, 1.0/158*100, ind["Return"], 1e-9)

	short := Indicators(series(25, 100, 1))
	assert.Contains(t, short, "MA20")
	assert.NotContains(t, short, "MA50")
	assert.NotContains(t, short, "MACD")

	assert.Empty(t, Indicators(nil))
}

func TestReadCloses(t *testing.T) {
	closes, err := ReadCloses(strings.NewReader("date,close\n2026-10-14,100.5\n2026-10-15,101\n2026-10-16,99.25\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{100.5, 101, 99.25}, closes)

	_, err = ReadCloses(strings.NewReader("date,close\n2026-10-14,abc\n"))
	assert.Error(t, err)
}

func TestLoadClosesMissingFile(t *testing.T) {
	_, err := LoadCloses(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
