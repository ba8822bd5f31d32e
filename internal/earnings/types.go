package earnings

import (
	"context"
	"math"
	"time"
)

// DateLayout is the calendar date format used by earnings sources
const DateLayout = "2006-01-02"

// Event is one row of an earnings calendar
type Event struct {
	Symbol      string   `json:"symbol"`
	Date        string   `json:"date"`
	EPSEstimate *float64 `json:"eps_estimate,omitempty"`
	EPSActual   *float64 `json:"eps_actual,omitempty"`
}

// RiskLevel is the qualitative event risk around an earnings date
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Result is the output of the earnings risk stage. RiskLevel and RiskReason
// always come from the same ClassifyRisk call.
type Result struct {
	EarningsDate *string   `json:"earnings_date"`
	RiskLevel    RiskLevel `json:"risk_level"`
	RiskReason   string    `json:"risk_reason"`
	EPSEstimate  *float64  `json:"eps_estimate,omitempty"`
	EPSActual    *float64  `json:"eps_actual,omitempty"`
}

// Surprise returns the EPS surprise percentage when both the estimate and the
// actual are known and the estimate is non-zero.
func (r Result) Surprise() (float64, bool) {
	if r.EPSEstimate == nil || r.EPSActual == nil || *r.EPSEstimate == 0 {
		return 0, false
	}
	est := *r.EPSEstimate
	return (*r.EPSActual - est) / math.Abs(est) * 100, true
}

// NewResult classifies date against now and returns the matching Result.
func NewResult(date *string, now time.Time) Result {
	level, reason := ClassifyRisk(date, now)
	return Result{EarningsDate: date, RiskLevel: level, RiskReason: reason}
}

// Fetcher supplies earnings calendar rows for a ticker over [from, to]
type Fetcher interface {
	FetchEarnings(ctx context.Context, ticker string, from, to time.Time) ([]Event, error)
}

// FetcherFunc adapts a function to Fetcher
type FetcherFunc func(ctx context.Context, ticker string, from, to time.Time) ([]Event, error)

func (f FetcherFunc) FetchEarnings(ctx context.Context, ticker string, from, to time.Time) ([]Event, error) {
	return f(ctx, ticker, from, to)
}
