package data

import (
	"sort"
	"time"
)

// Provider supplies market data to the valuation pipeline. Implementations
// cover local CSV tables and synthetic fixtures; both feed identical
// downstream code.
type Provider interface {
	// PriceHistory returns the full price series, ordered by date.
	PriceHistory() ([]PricePoint, error)
	// OptionQuotes returns the option snapshots, ordered by as-of date.
	OptionQuotes() ([]OptionQuote, error)
}

// PricePoint is one daily close of the underlying. Loaded or generated once,
// immutable thereafter.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// OptionQuote is an immutable snapshot of a call option observed on AsOf.
type OptionQuote struct {
	AsOf         time.Time
	Spot         float64
	Strike       float64
	Expiration   time.Time
	RiskFreeRate float64
	MarketPrice  float64
}

// Closes extracts the close column from a price series, preserving order.
func Closes(points []PricePoint) []float64 {
	out := make([]float64, 0, len(points))
	for _, p := range points {
		out = append(out, p.Close)
	}
	return out
}

// SortByDate orders a price series in place by ascending date.
func SortByDate(points []PricePoint) {
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
}

// TradingDaysBetween counts weekdays in (from, to]. Saturdays and Sundays are
// skipped; holidays are not modelled.
func TradingDaysBetween(from, to time.Time) int {
	n := 0
	for cur := from.AddDate(0, 0, 1); !cur.After(to); cur = cur.AddDate(0, 0, 1) {
		if cur.Weekday() != time.Saturday && cur.Weekday() != time.Sunday {
			n++
		}
	}
	return n
}
