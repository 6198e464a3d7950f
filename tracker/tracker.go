// Package tracker wires the offer-event stream, the ledger and the journal
// into one session. A single consumer goroutine applies events in arrival
// order, which is all the serialization the ledger's latest-price and
// FIFO-flip semantics need; saving happens on its own goroutine so the event
// path never blocks on I/O.
package tracker

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rustyeddy/flipper/exchange"
	"github.com/rustyeddy/flipper/journal"
	"github.com/rustyeddy/flipper/ledger"
)

type Tracker struct {
	ledger *ledger.Ledger
	store  journal.Store
	norm   *exchange.Normalizer
	log    *zap.Logger

	persist bool
	dirty   chan struct{}
}

// Options tune tracker behavior beyond the defaults.
type Options struct {
	// Persist controls whether mutations are written through to the store.
	// Mirrors the store-trade-history preference.
	Persist bool
}

func New(l *ledger.Ledger, store journal.Store, log *zap.Logger, opts Options) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	t := &Tracker{
		ledger:  l,
		store:   store,
		norm:    exchange.NewNormalizer(log),
		log:     log,
		persist: opts.Persist,
		dirty:   make(chan struct{}, 1),
	}
	return t
}

func (t *Tracker) Ledger() *ledger.Ledger { return t.ledger }

// LoadSession replaces the ledger with the persisted snapshot. A malformed
// snapshot is logged and replaced with an empty ledger; only I/O-level
// failures are returned.
func (t *Tracker) LoadSession() error {
	items, err := t.store.Load()
	if err != nil {
		if errors.Is(err, journal.ErrMalformedSnapshot) {
			t.log.Warn("persisted ledger unreadable, starting empty", zap.Error(err))
			t.ledger.Load(nil)
			return nil
		}
		return err
	}
	t.ledger.Load(items)
	t.log.Info("session loaded", zap.Int("items", t.ledger.Len()))
	return nil
}

// Reset clears the ledger and the persisted snapshot.
func (t *Tracker) Reset() error {
	t.ledger.Reset()
	if err := t.store.Clear(); err != nil {
		return err
	}
	t.log.Info("session reset")
	return nil
}

// Run consumes offer events until the channel closes or ctx is cancelled,
// whichever comes first. A final save runs on the way out so a clean
// shutdown never loses the tail of the session.
func (t *Tracker) Run(ctx context.Context, events <-chan exchange.OfferEvent) error {
	g, ctx := errgroup.WithContext(ctx)

	done := make(chan struct{})
	g.Go(func() error {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				t.Apply(ev)
			}
		}
	})

	g.Go(func() error {
		for {
			select {
			case <-done:
				t.flush()
				return nil
			case <-t.dirty:
				t.flush()
			}
		}
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Apply runs one notification through the normalizer and records the
// resulting trade, if any. Callers outside Run must not call this
// concurrently; event order is the serialization contract.
func (t *Tracker) Apply(ev exchange.OfferEvent) {
	trade, ok := t.norm.Observe(ev)
	if !ok {
		return
	}

	t.ledger.Record(trade)
	t.log.Debug("recorded trade",
		zap.Int("item_id", trade.ItemID),
		zap.Bool("buy", trade.Buy),
		zap.Int("price", trade.Price),
		zap.Int("quantity", trade.Quantity))

	if t.persist {
		// Coalesce: one pending save is enough, the snapshot is whole.
		select {
		case t.dirty <- struct{}{}:
		default:
		}
	}
}

func (t *Tracker) flush() {
	if !t.persist {
		return
	}
	if err := t.store.Save(t.ledger.Snapshot()); err != nil {
		// Best effort: a failed save costs at most one restart's history.
		t.log.Warn("ledger save failed", zap.Error(err))
	}
}
