package ledger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/rustyeddy/flipper/exchange"
)

const (
	// MaxHistory caps the trade history kept per item.
	MaxHistory = 20
	// MaxItems caps how many items the ledger tracks at once.
	MaxItems = 200
)

// Event describes a ledger mutation, delivered to subscribers so the
// presentation layer knows to re-render.
type Event int

const (
	EventRecord Event = iota
	EventReset
	EventLoad
	EventRemove
)

// Ledger is the bounded, recency-ordered collection of per-item trade
// records for the active session. Items are unique by id; the most recently
// traded item is always at the front, and the record at the tail is evicted
// when MaxItems is exceeded.
//
// Mutations are serialized under the write lock; readers get deep copies and
// never observe a half-applied trade.
type Ledger struct {
	mu    sync.RWMutex
	items []*Item
	meta  MetadataSource
	log   *zap.Logger

	subMu sync.Mutex
	subs  []func(Event)
}

func New(meta MetadataSource, log *zap.Logger) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ledger{meta: meta, log: log}
}

// Subscribe registers a change listener. Listeners run on the mutating
// goroutine after the ledger lock is released; keep them cheap and hand off
// real work elsewhere.
func (l *Ledger) Subscribe(fn func(Event)) {
	l.subMu.Lock()
	defer l.subMu.Unlock()
	l.subs = append(l.subs, fn)
}

func (l *Ledger) notify(ev Event) {
	l.subMu.Lock()
	subs := make([]func(Event), len(l.subs))
	copy(subs, l.subs)
	l.subMu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

// Record applies one trade to the ledger: an existing item gets the trade
// prepended to its history and moves to the front, a new item is created
// (with metadata looked up once) and inserted at the front. The tail item is
// evicted if the ledger grows past MaxItems.
func (l *Ledger) Record(t exchange.Trade) {
	l.mu.Lock()

	if idx := l.indexOf(t.ItemID); idx >= 0 {
		item := l.items[idx]
		item.record(t)
		l.items = append(l.items[:idx], l.items[idx+1:]...)
		l.items = append([]*Item{item}, l.items...)
	} else {
		item := l.newItem(t)
		l.items = append([]*Item{item}, l.items...)
		if len(l.items) > MaxItems {
			evicted := l.items[len(l.items)-1]
			l.items = l.items[:len(l.items)-1]
			l.log.Debug("evicting least recently traded item",
				zap.Int("item_id", evicted.ItemID),
				zap.String("name", evicted.Name))
		}
	}

	l.mu.Unlock()
	l.notify(EventRecord)
}

func (l *Ledger) newItem(t exchange.Trade) *Item {
	info, err := l.lookup(t.ItemID)
	if err != nil {
		l.log.Warn("item metadata lookup failed, using placeholder",
			zap.Int("item_id", t.ItemID), zap.Error(err))
		info = ItemInfo{Name: fmt.Sprintf("Item %d", t.ItemID)}
	}

	item := &Item{
		ItemID:   t.ItemID,
		Name:     info.Name,
		BuyLimit: info.BuyLimit,
	}
	item.record(t)
	return item
}

func (l *Ledger) lookup(itemID int) (ItemInfo, error) {
	if l.meta == nil {
		return ItemInfo{}, fmt.Errorf("no metadata source")
	}
	return l.meta.Lookup(itemID)
}

// indexOf must be called with the lock held.
func (l *Ledger) indexOf(itemID int) int {
	for i, it := range l.items {
		if it.ItemID == itemID {
			return i
		}
	}
	return -1
}

// Reset clears the ledger. Used by the explicit reset action and on
// account switch.
func (l *Ledger) Reset() {
	l.mu.Lock()
	l.items = nil
	l.mu.Unlock()
	l.notify(EventReset)
}

// Load replaces the ledger contents wholesale with a persisted snapshot.
// Malformed input is replaced with an empty ledger rather than partially
// applied: a corrupt snapshot must never take the session down.
func (l *Ledger) Load(items []Item) {
	clean, err := validate(items)
	if err != nil {
		l.log.Warn("discarding malformed ledger snapshot", zap.Error(err))
		clean = nil
	}

	l.mu.Lock()
	l.items = clean
	l.mu.Unlock()
	l.notify(EventLoad)
}

// validate normalizes a persisted snapshot, enforcing the caps and the
// structural invariants before it is allowed in.
func validate(items []Item) ([]*Item, error) {
	if len(items) > MaxItems {
		items = items[:MaxItems]
	}

	seen := make(map[int]bool, len(items))
	out := make([]*Item, 0, len(items))
	for i := range items {
		it := items[i].clone()
		if it.ItemID <= 0 {
			return nil, fmt.Errorf("item %d: invalid id %d", i, it.ItemID)
		}
		if seen[it.ItemID] {
			return nil, fmt.Errorf("duplicate item id %d", it.ItemID)
		}
		seen[it.ItemID] = true

		if len(it.History) > MaxHistory {
			it.History = it.History[:MaxHistory]
		}
		for _, t := range it.History {
			if t.ItemID != it.ItemID {
				return nil, fmt.Errorf("item %d: trade for item %d in history", it.ItemID, t.ItemID)
			}
			if t.Quantity < 1 || t.Price < 0 {
				return nil, fmt.Errorf("item %d: invalid trade (price %d, quantity %d)", it.ItemID, t.Price, t.Quantity)
			}
		}
		out = append(out, &it)
	}
	return out, nil
}

// Snapshot returns a deep copy of the ledger in recency order, suitable for
// rendering or handing to the persistence adapter.
func (l *Ledger) Snapshot() []Item {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Item, len(l.items))
	for i, it := range l.items {
		out[i] = it.clone()
	}
	return out
}

// Item returns a copy of one record.
func (l *Ledger) Item(itemID int) (Item, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if idx := l.indexOf(itemID); idx >= 0 {
		return l.items[idx].clone(), true
	}
	return Item{}, false
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Remove deletes a single item record, the ledger-side of the panel delete
// action. Reports whether the item was present.
func (l *Ledger) Remove(itemID int) bool {
	l.mu.Lock()
	idx := l.indexOf(itemID)
	if idx >= 0 {
		l.items = append(l.items[:idx], l.items[idx+1:]...)
	}
	l.mu.Unlock()

	if idx >= 0 {
		l.notify(EventRemove)
		return true
	}
	return false
}

// SetExpanded stores the UI expand/collapse preference for an item so it
// survives re-renders and persistence round trips.
func (l *Ledger) SetExpanded(itemID int, expanded bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if idx := l.indexOf(itemID); idx >= 0 {
		l.items[idx].Expanded = expanded
	}
}
