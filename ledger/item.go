package ledger

import (
	"time"

	"github.com/rustyeddy/flipper/exchange"
)

// ItemInfo is the metadata the exchange knows about an item.
type ItemInfo struct {
	Name     string `json:"name"`
	BuyLimit int    `json:"buy_limit"`
}

// MetadataSource resolves an item id to its display metadata. Called once
// per newly seen item; a failed lookup degrades to a placeholder, it never
// blocks a trade from being recorded.
type MetadataSource interface {
	Lookup(itemID int) (ItemInfo, error)
}

// Item is the per-item trade record. History is newest-first and capped at
// MaxHistory entries. The latest buy/sell fields cache the most recent trade
// of each side so margins can be shown without walking the history, and they
// keep updating even after the history starts truncating.
type Item struct {
	ItemID   int    `json:"item_id"`
	Name     string `json:"name"`
	BuyLimit int    `json:"buy_limit"`

	History []exchange.Trade `json:"history"`

	LatestBuyPrice  int       `json:"latest_buy_price"`
	LatestBuyTime   time.Time `json:"latest_buy_time"`
	LatestSellPrice int       `json:"latest_sell_price"`
	LatestSellTime  time.Time `json:"latest_sell_time"`

	Expanded bool `json:"expanded"`
}

func (it *Item) record(t exchange.Trade) {
	it.History = append([]exchange.Trade{t}, it.History...)
	if len(it.History) > MaxHistory {
		it.History = it.History[:MaxHistory]
	}

	if t.Buy {
		it.LatestBuyPrice = t.Price
		it.LatestBuyTime = t.Time
	} else {
		it.LatestSellPrice = t.Price
		it.LatestSellTime = t.Time
	}
}

// clone returns a deep copy so callers can hand items across the ledger
// boundary without aliasing the live history slice.
func (it *Item) clone() Item {
	out := *it
	out.History = make([]exchange.Trade, len(it.History))
	copy(out.History, it.History)
	return out
}
