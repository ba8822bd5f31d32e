package earnings

import (
	"context"
	"time"
)

// StaticFetcher serves fixed calendar rows per ticker for fixtures and tests.
// Dates outside the requested window are dropped unless they fail
// to parse.
type StaticFetcher struct {
	Events map[string][]Event
	Err    error
}

func (f *StaticFetcher) FetchEarnings(ctx context.Context, ticker string, from, to time.Time) ([]Event, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	var out []Event
	for _, ev := range f.Events[ticker] {
		t, err := time.ParseInLocation(DateLayout, ev.Date, from.Location())
		if err == nil && (DayOffset(t, from) < 0 || DayOffset(t, to) > 0) {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}
