// Package journal persists ledger snapshots. The ledger is the source of
// truth while the session runs; the journal only round-trips snapshots
// across restarts, so a corrupt store degrades to an empty ledger rather
// than an error the event path has to care about.
package journal

import (
	"errors"

	"github.com/rustyeddy/flipper/ledger"
)

// ErrMalformedSnapshot marks a persisted snapshot that could not be decoded.
// Callers recover by starting from an empty ledger.
var ErrMalformedSnapshot = errors.New("journal: malformed snapshot")

// Store persists and restores ledger snapshots, in ledger (recency) order.
type Store interface {
	// Save replaces the persisted snapshot. Best effort; the caller does
	// not retry.
	Save(items []ledger.Item) error
	// Load returns the persisted snapshot, nil when none exists, and
	// ErrMalformedSnapshot when the stored bytes cannot be decoded.
	Load() ([]ledger.Item, error)
	// Clear removes the persisted snapshot.
	Clear() error
	Close() error
}
