package exchange

import "time"

// OfferState is the lifecycle state carried by an offer notification.
type OfferState int

const (
	StateEmpty OfferState = iota
	StateBuying
	StateSelling
	StateBought
	StateSold
	StateCancelledBuy
	StateCancelledSell
)

var stateNames = map[OfferState]string{
	StateEmpty:         "empty",
	StateBuying:        "buying",
	StateSelling:       "selling",
	StateBought:        "bought",
	StateSold:          "sold",
	StateCancelledBuy:  "cancelled_buy",
	StateCancelledSell: "cancelled_sell",
}

func (s OfferState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether the state marks the completion of an offer.
func (s OfferState) Terminal() bool {
	return s == StateBought || s == StateSold
}

// ParseOfferState converts the textual form used by replay files back into
// an OfferState.
func ParseOfferState(s string) (OfferState, bool) {
	for st, name := range stateNames {
		if name == s {
			return st, true
		}
	}
	return StateEmpty, false
}

// OfferEvent is one raw offer-state notification from the exchange. The
// quantity and spend fields are cumulative for the life of the offer, not
// per-notification deltas. ItemID 0 means the slot holds no offer.
type OfferEvent struct {
	Slot           int
	ItemID         int
	State          OfferState
	QuantityFilled int
	TotalSpent     int
	Time           time.Time
}
