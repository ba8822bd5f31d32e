package earnings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 16, 15, 0, 0, 0, time.UTC)

func dateIn(days int) *string {
	s := testNow.AddDate(0, 0, days).Format(DateLayout)
	return &s
}

func TestClassifyRiskBands(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		level  RiskLevel
		reason string
	}{
		{"today", 0, RiskHigh, "Earnings in 0 day(s) - expect high volatility"},
		{"high band upper edge", 3, RiskHigh, "Earnings in 3 day(s) - expect high volatility"},
		{"medium after high", 4, RiskMedium, "Earnings in 4 day(s) - moderate risk"},
		{"medium upper edge", 14, RiskMedium, "Earnings in 14 day(s) - moderate risk"},
		{"low beyond two weeks", 15, RiskLow, "Earnings in 15 day(s) - low immediate risk"},
		{"released yesterday", -1, RiskHigh, "Earnings released 1 day(s) ago - high volatility period"},
		{"high band lower edge", -2, RiskHigh, "Earnings released 2 day(s) ago - high volatility period"},
		{"released last week", -3, RiskMedium, "Earnings released last week - volatility settling"},
		{"medium lower edge", -7, RiskMedium, "Earnings released last week - volatility settling"},
		{"past window", -8, RiskLow, ReasonOutsideRange},
		{"long past", -10, RiskLow, ReasonOutsideRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, reason := ClassifyRisk(dateIn(tt.offset), testNow)
			assert.Equal(t, tt.level, level)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestClassifyRiskMissingAndMalformed(t *testing.T) {
	level, reason := ClassifyRisk(nil, testNow)
	assert.Equal(t, RiskLow, level)
	assert.Equal(t, ReasonNoEarnings, reason)

	empty := ""
	level, reason = ClassifyRisk(&empty, testNow)
	assert.Equal(t, RiskLow, level)
	assert.Equal(t, ReasonNoEarnings, reason)

	bad := "16/10/2026"
	level, reason = ClassifyRisk(&bad, testNow)
	assert.Equal(t, RiskLow, level)
	assert.Equal(t, ReasonUnparseable, reason)
}

func TestDayOffsetIgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2026, 10, 16, 23, 59, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, DayOffset(tomorrow, late))
	assert.Equal(t, 0, DayOffset(testNow, late))
	assert.Equal(t, -5, DayOffset(testNow.AddDate(0, 0, -5), testNow))
}

func TestNearest(t *testing.T) {
	events := []Event{
		{Symbol: "XYZ", Date: *dateIn(20)},
		{Symbol: "XYZ", Date: "garbage"},
		{Symbol: "XYZ", Date: *dateIn(-4)},
		{Symbol: "XYZ", Date: *dateIn(4)},
	}
	ev, ok := Nearest(events, testNow)
	require.True(t, ok)
	// -4 and +4 tie: the earlier row wins
	assert.Equal(t, *dateIn(-4), ev.Date)

	ev, ok = Nearest([]Event{{Date: "garbage"}}, testNow)
	require.True(t, ok)
	assert.Equal(t, "garbage", ev.Date)

	_, ok = Nearest(nil, testNow)
	assert.False(t, ok)
}

func TestStageRun(t *testing.T) {
	est := 1.25
	fetcher := &StaticFetcher{Events: map[string][]Event{
		"XYZ": {
			{Symbol: "XYZ", Date: *dateIn(45)},
			{Symbol: "XYZ", Date: *dateIn(2), EPSEstimate: &est},
		},
	}}
	stage := NewStage(fetcher, WithClock(func() time.Time { return testNow }))

	res := stage.Run(context.Background(), "XYZ")
	require.NotNil(t, res.EarningsDate)
	assert.Equal(t, *dateIn(2), *res.EarningsDate)
	assert.Equal(t, RiskHigh, res.RiskLevel)
	assert.Equal(t, "Earnings in 2 day(s) - expect high volatility", res.RiskReason)
	require.NotNil(t, res.EPSEstimate)
	assert.Equal(t, 1.25, *res.EPSEstimate)
}

func TestStageRunWindowExcludesFarDates(t *testing.T) {
	fetcher := &StaticFetcher{Events: map[string][]Event{
		"XYZ": {{Symbol: "XYZ", Date: *dateIn(45)}},
	}}
	res := NewStage(fetcher, WithClock(func() time.Time { return testNow })).Run(context.Background(), "XYZ")
	assert.Nil(t, res.EarningsDate)
	assert.Equal(t, RiskLow, res.RiskLevel)
	assert.Equal(t, ReasonNoEarnings, res.RiskReason)

	res = NewStage(fetcher, WithClock(func() time.Time { return testNow }), WithWindowDays(60)).Run(context.Background(), "XYZ")
	require.NotNil(t, res.EarningsDate)
	assert.Equal(t, RiskLow, res.RiskLevel)
}

func TestStageRunAbsorbsFetchError(t *testing.T) {
	fetcher := &StaticFetcher{Err: errors.New("finnhub down")}
	res := NewStage(fetcher, WithClock(func() time.Time { return testNow })).Run(context.Background(), "XYZ")
	assert.Nil(t, res.EarningsDate)
	assert.Equal(t, RiskLow, res.RiskLevel)
	assert.Equal(t, ReasonNoEarnings, res.RiskReason)
}

func TestStageRunMalformedDate(t *testing.T) {
	fetcher := &StaticFetcher{Events: map[string][]Event{
		"XYZ": {{Symbol: "XYZ", Date: "Q4 2026"}},
	}}
	res := NewStage(fetcher, WithClock(func() time.Time { return testNow })).Run(context.Background(), "XYZ")
	require.NotNil(t, res.EarningsDate)
	assert.Equal(t, RiskLow, res.RiskLevel)
	assert.Equal(t, ReasonUnparseable, res.RiskReason)
}

func TestSurprise(t *testing.T) {
	est, actual, neg := 2.0, 2.3, -0.5
	zero := 0.0

	s, ok := Result{EPSEstimate: &est, EPSActual: &actual}.Surprise()
	require.True(t, ok)
	assert.InDelta(t, 15.0, s, 1e-9)

	s, ok = Result{EPSEstimate: &neg, EPSActual: &zero}.Surprise()
	require.True(t, ok)
	assert.InDelta(t, 100.0, s, 1e-9)

	_, ok = Result{EPSEstimate: &est}.Surprise()
	assert.False(t, ok)
	_, ok = Result{EPSEstimate: &zero, EPSActual: &actual}.Surprise()
	assert.False(t, ok)
}
