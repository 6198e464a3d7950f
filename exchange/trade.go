package exchange

import "time"

// Trade is one completed fill, derived from a terminal offer notification.
// Trades are immutable facts; everything else in the ledger is rederivable
// from them.
type Trade struct {
	ID       string    `json:"id"`
	ItemID   int       `json:"item_id"`
	Buy      bool      `json:"buy"`
	Price    int       `json:"price"` // unit price
	Quantity int       `json:"quantity"`
	Time     time.Time `json:"time"`
}

// Cashflow is the total money moved by the trade.
func (t Trade) Cashflow() int64 {
	return int64(t.Price) * int64(t.Quantity)
}
