package earnings

import (
	"fmt"
	"time"
)

// Reasons for the LOW band that do not carry a day count
const (
	ReasonNoEarnings   = "No upcoming earnings detected"
	ReasonUnparseable  = "Unable to parse earnings date"
	ReasonOutsideRange = "Earnings date outside risk window"
)

// DayOffset returns the signed number of calendar days from now's date to
// date (both taken as calendar days in now's location).
func DayOffset(date, now time.Time) int {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	y, m, d = date.Date()
	target := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(target.Sub(today).Hours() / 24)
}

// ClassifyRisk maps an earnings date (YYYY-MM-DD) to a risk level and reason.
// Bands are checked HIGH first; they overlap, so the order decides.
func ClassifyRisk(date *string, now time.Time) (RiskLevel, string) {
	if date == nil || *date == "" {
		return RiskLow, ReasonNoEarnings
	}
	t, err := time.ParseInLocation(DateLayout, *date, now.Location())
	if err != nil {
		return RiskLow, ReasonUnparseable
	}
	return classifyOffset(DayOffset(t, now))
}

func classifyOffset(d int) (RiskLevel, string) {
	switch {
	case d >= -2 && d <= 3:
		if d < 0 {
			return RiskHigh, fmt.Sprintf("Earnings released %d day(s) ago - high volatility period", -d)
		}
		return RiskHigh, fmt.Sprintf("Earnings in %d day(s) - expect high volatility", d)
	case d >= -7 && d <= 14:
		if d < 0 {
			return RiskMedium, "Earnings released last week - volatility settling"
		}
		return RiskMedium, fmt.Sprintf("Earnings in %d day(s) - moderate risk", d)
	case d > 14:
		return RiskLow, fmt.Sprintf("Earnings in %d day(s) - low immediate risk", d)
	default:
		return RiskLow, ReasonOutsideRange
	}
}
