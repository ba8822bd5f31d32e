package finnhub

import (
	"errors"
	"fmt"
	"time"
)

// ErrMissingAPIKey is returned by every call when the client has no token
var ErrMissingAPIKey = errors.New("finnhub: API key not configured")

// CompanyNews is one item from /company-news
type CompanyNews struct {
	Category string `json:"category"`
	Datetime int64  `json:"datetime"`
	Headline string `json:"headline"`
	ID       int64  `json:"id"`
	Image    string `json:"image"`
	Related  string `json:"related"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
}

// Time converts the unix-seconds Datetime field
func (n CompanyNews) Time() time.Time {
	return time.Unix(n.Datetime, 0)
}

// EarningsCalendarEntry is one row of /calendar/earnings
type EarningsCalendarEntry struct {
	Date            string   `json:"date"`
	EPSActual       *float64 `json:"epsActual"`
	EPSEstimate     *float64 `json:"epsEstimate"`
	Hour            string   `json:"hour"`
	Quarter         int      `json:"quarter"`
	RevenueActual   *float64 `json:"revenueActual"`
	RevenueEstimate *float64 `json:"revenueEstimate"`
	Symbol          string   `json:"symbol"`
	Year            int      `json:"year"`
}

type earningsCalendarResponse struct {
	EarningsCalendar []EarningsCalendarEntry `json:"earningsCalendar"`
}

// APIError represents a non-2xx response from the Finnhub API.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Finnhub API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// RateLimitError is returned when Finnhub keeps answering 429 after retries.
type RateLimitError struct {
	Endpoint string
	Attempts int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("Finnhub rate limit exceeded on %s after %d attempt(s)", e.Endpoint, e.Attempts)
}
