package stats

import (
	"time"

	"github.com/rustyeddy/flipper/exchange"
)

// Stats are the interval-scoped aggregates for one item. Averages and ROI
// are undefined when their denominator is zero; the validity flags make
// that explicit instead of leaking a NaN into the display.
type Stats struct {
	Revenue  int64
	Expense  int64
	Profit   int64
	Quantity int64 // units sold in the interval, the completed-turnover count

	AvgBuyPrice float64
	HasAvgBuy   bool

	AvgSellPrice float64
	HasAvgSell   bool

	ROIPercent float64
	HasROI     bool
}

// IntervalHistory filters a history to trades at or after start, returned
// oldest-first.
func IntervalHistory(history []exchange.Trade, start time.Time) []exchange.Trade {
	var out []exchange.Trade
	for _, t := range Chronological(history) {
		if !t.Time.Before(start) {
			out = append(out, t)
		}
	}
	return out
}

// Interval computes the aggregates over the trades at or after start.
// Revenue sums sell-side cashflow, Expense buy-side; Quantity counts units
// sold, matching the "quantity flipped" semantic of completed turnover.
func Interval(history []exchange.Trade, start time.Time) Stats {
	var s Stats
	for _, t := range IntervalHistory(history, start) {
		if t.Buy {
			s.Expense += t.Cashflow()
		} else {
			s.Revenue += t.Cashflow()
			s.Quantity += int64(t.Quantity)
		}
	}

	s.Profit = s.Revenue - s.Expense
	// An average is only meaningful when both the divisor and the side it
	// averages are present; a sell-only interval has no buy average.
	if s.Quantity > 0 && s.Expense > 0 {
		s.AvgBuyPrice = float64(s.Expense) / float64(s.Quantity)
		s.HasAvgBuy = true
	}
	if s.Quantity > 0 && s.Revenue > 0 {
		s.AvgSellPrice = float64(s.Revenue) / float64(s.Quantity)
		s.HasAvgSell = true
	}
	if s.Expense > 0 {
		s.ROIPercent = float64(s.Profit) / float64(s.Expense) * 100
		s.HasROI = true
	}
	return s
}
