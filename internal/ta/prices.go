package ta

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

// PriceRow is one row of a daily price CSV. Only the close column is
// required; rows must be oldest first.
type PriceRow struct {
	Date  string  `csv:"date"`
	Close float64 `csv:"close"`
}

// ReadCloses parses a price CSV with a header row and returns its closes.
func ReadCloses(r io.Reader) ([]float64, error) {
	var rows []*PriceRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse price csv: %w", err)
	}
	closes := make([]float64, 0, len(rows))
	for _, row := range rows {
		closes = append(closes, row.Close)
	}
	return closes, nil
}

// LoadCloses reads closes from a CSV file on disk.
func LoadCloses(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCloses(f)
}
