package earnings

import (
	"context"
	"time"

	"equity-intel/internal/logger"
)

// DefaultWindowDays is the half-width of the calendar query around now
const DefaultWindowDays = 30

// Stage looks up the nearest earnings date and scores its proximity risk
type Stage struct {
	fetcher    Fetcher
	windowDays int
	now        func() time.Time
}

// StageOption configures a Stage
type StageOption func(*Stage)

// WithClock overrides the time source
func WithClock(now func() time.Time) StageOption {
	return func(s *Stage) {
		s.now = now
	}
}

// WithWindowDays sets the ± calendar window queried around now
func WithWindowDays(days int) StageOption {
	return func(s *Stage) {
		if days > 0 {
			s.windowDays = days
		}
	}
}

// NewStage creates an earnings risk stage
func NewStage(fetcher Fetcher, opts ...StageOption) *Stage {
	s := &Stage{
		fetcher:    fetcher,
		windowDays: DefaultWindowDays,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run never fails: an unavailable source is reported as "no upcoming earnings".
func (s *Stage) Run(ctx context.Context, ticker string) Result {
	now := s.now()

	var events []Event
	if s.fetcher != nil {
		var err error
		from := now.AddDate(0, 0, -s.windowDays)
		to := now.AddDate(0, 0, s.windowDays)
		events, err = s.fetcher.FetchEarnings(ctx, ticker, from, to)
		if err != nil {
			logger.WarnWithErr(ctx, "Earnings fetch failed, assuming no upcoming earnings", err, "ticker", ticker)
			events = nil
		}
	}

	ev, ok := Nearest(events, now)
	var res Result
	if !ok {
		res = NewResult(nil, now)
	} else {
		date := ev.Date
		res = NewResult(&date, now)
		res.EPSEstimate = ev.EPSEstimate
		res.EPSActual = ev.EPSActual
	}

	logger.Risk(ctx, ticker, string(res.RiskLevel), res.RiskReason)
	return res
}

// Nearest picks the event whose date is closest to now; ties keep the earlier
// row. Rows with unparseable dates only win when no row parses, so the parse
// failure still surfaces as a reason.
func Nearest(events []Event, now time.Time) (Event, bool) {
	if len(events) == 0 {
		return Event{}, false
	}

	best := -1
	bestDist := 0
	for i, ev := range events {
		t, err := time.ParseInLocation(DateLayout, ev.Date, now.Location())
		if err != nil {
			continue
		}
		dist := DayOffset(t, now)
		if dist < 0 {
			dist = -dist
		}
		if best == -1 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best == -1 {
		return events[0], true
	}
	return events[best], true
}
