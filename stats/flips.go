// Package stats derives flips and interval aggregates from an item's trade
// history. Everything here is a pure function of its inputs: flips are never
// stored, they are recomputed from the history on demand, so the same
// history must always produce the same flips.
package stats

import (
	"sort"
	"time"

	"github.com/rustyeddy/flipper/exchange"
)

// Flip is one completed buy+sell cycle. Quantity is how many units the
// cycle moved; Cost and Revenue are the money on each side at that quantity.
type Flip struct {
	ItemID   int
	Quantity int
	Cost     int64
	Revenue  int64
	Profit   int64
	OpenedAt time.Time
	ClosedAt time.Time
}

// Flips reconstructs the completed flips in a trade history.
//
// Buys and sells are matched FIFO: the oldest unmatched buy pairs against
// the oldest unmatched sell, consuming min(remaining) units from each side;
// whichever side is exhausted advances. A flip only closes when both sides
// contribute, so a lone unmatched buy or sell stays open and produces
// nothing. No trade is ever consumed into two flips.
//
// The history may be in either recency order; it is sorted chronologically
// before matching. Zero-quantity trades are invalid input and are skipped.
func Flips(history []exchange.Trade) []Flip {
	var buys, sells []exchange.Trade
	for _, t := range Chronological(history) {
		if t.Quantity < 1 {
			continue
		}
		if t.Buy {
			buys = append(buys, t)
		} else {
			sells = append(sells, t)
		}
	}

	var flips []Flip
	bi, si := 0, 0
	remBuy, remSell := 0, 0
	if len(buys) > 0 {
		remBuy = buys[0].Quantity
	}
	if len(sells) > 0 {
		remSell = sells[0].Quantity
	}

	for bi < len(buys) && si < len(sells) {
		qty := remBuy
		if remSell < qty {
			qty = remSell
		}

		flips = append(flips, Flip{
			ItemID:   buys[bi].ItemID,
			Quantity: qty,
			Cost:     int64(buys[bi].Price) * int64(qty),
			Revenue:  int64(sells[si].Price) * int64(qty),
			Profit:   int64(sells[si].Price-buys[bi].Price) * int64(qty),
			OpenedAt: buys[bi].Time,
			ClosedAt: sells[si].Time,
		})

		remBuy -= qty
		remSell -= qty
		if remBuy == 0 {
			bi++
			if bi < len(buys) {
				remBuy = buys[bi].Quantity
			}
		}
		if remSell == 0 {
			si++
			if si < len(sells) {
				remSell = sells[si].Quantity
			}
		}
	}

	return flips
}

// Chronological returns the history oldest-first without mutating the input.
// Same-instant trades tie-break on the ULID id, which sorts by creation
// time, so the order is total even for timestamps that collide.
func Chronological(history []exchange.Trade) []exchange.Trade {
	out := make([]exchange.Trade, len(history))
	copy(out, history)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Time.Equal(out[j].Time) {
			return out[i].ID < out[j].ID
		}
		return out[i].Time.Before(out[j].Time)
	})
	return out
}
