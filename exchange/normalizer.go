package exchange

import (
	"go.uber.org/zap"

	"github.com/rustyeddy/flipper/pkg/id"
)

// Normalizer turns the noisy offer-notification stream into discrete trades.
// The exchange raises many intermediate notifications over a single offer's
// life; only the transition that completes a fill in one step should become
// a ledger fact, otherwise the same fill is counted repeatedly.
//
// The only state kept is the last observed cumulative fill per slot, scoped
// to one offer's life, which is what lets us tell an instantaneous fill
// apart from the tail end of a slow one. Normalizer is not safe for
// concurrent use; feed it from a single goroutine, the same ordering the
// exchange delivers.
type Normalizer struct {
	lastSeen map[int]offerMark // slot -> last observation for the offer in it
	log      *zap.Logger
}

// offerMark is the watermark for the offer currently occupying a slot. The
// item id identifies the offer: a notification for a different item means
// the slot was reused and the old watermark no longer applies.
type offerMark struct {
	itemID int
	filled int
}

func NewNormalizer(log *zap.Logger) *Normalizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Normalizer{
		lastSeen: make(map[int]offerMark),
		log:      log,
	}
}

// Observe consumes one notification and returns at most one Trade.
//
// A Trade is emitted only for a terminal state (bought/sold) whose entire
// fill arrived in that single transition: the increment over the last
// observation equals the cumulative fill. This covers the classic
// single-unit margin check (quantity 1) as well as larger offers that fill
// instantly. Offers that fill gradually only advance the per-slot watermark
// and never emit.
func (n *Normalizer) Observe(ev OfferEvent) (Trade, bool) {
	if ev.ItemID == 0 {
		// Slot cleared or never held an offer.
		delete(n.lastSeen, ev.Slot)
		return Trade{}, false
	}

	mark := n.lastSeen[ev.Slot]
	if mark.itemID != ev.ItemID {
		// Slot reused for a new offer without an intervening clear;
		// the old watermark belongs to a finished offer.
		mark = offerMark{itemID: ev.ItemID}
	}

	switch ev.State {
	case StateBuying, StateSelling:
		mark.filled = ev.QuantityFilled
		n.lastSeen[ev.Slot] = mark
		return Trade{}, false

	case StateBought, StateSold:
		last := mark.filled
		// The watermark survives the terminal state so a repeated
		// notification for the same offer cannot convert twice. It is
		// cleared when the slot empties, the offer is cancelled, or a
		// different item shows up in the slot.
		mark.filled = ev.QuantityFilled
		n.lastSeen[ev.Slot] = mark

		increment := ev.QuantityFilled - last
		if increment != ev.QuantityFilled {
			// Tail end of a gradual fill; already watched it happen.
			return Trade{}, false
		}
		if ev.QuantityFilled < 1 || ev.TotalSpent <= 0 {
			n.log.Warn("rejecting invalid fill",
				zap.Int("item_id", ev.ItemID),
				zap.Int("quantity", ev.QuantityFilled),
				zap.Int("spent", ev.TotalSpent))
			return Trade{}, false
		}

		return Trade{
			ID:       id.New(),
			ItemID:   ev.ItemID,
			Buy:      ev.State == StateBought,
			Price:    ev.TotalSpent / ev.QuantityFilled,
			Quantity: ev.QuantityFilled,
			Time:     ev.Time,
		}, true

	default:
		// Cancellations and empty slots end the offer without a fact.
		delete(n.lastSeen, ev.Slot)
		return Trade{}, false
	}
}
