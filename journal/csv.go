// journal/csv.go
package journal

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/rustyeddy/flipper/ledger"
)

// ExportCSV writes every trade in the snapshot as a flat CSV, one row per
// trade, items in ledger order and each history oldest-first. Meant for
// spreadsheets and external analysis, not for reloading.
func ExportCSV(w io.Writer, items []ledger.Item) error {
	cw := csv.NewWriter(w)

	header := []string{"trade_id", "item_id", "item_name", "side", "price", "quantity", "time"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, it := range items {
		// History is stored newest-first; flip it for export.
		for i := len(it.History) - 1; i >= 0; i-- {
			t := it.History[i]
			side := "sell"
			if t.Buy {
				side = "buy"
			}
			err := cw.Write([]string{
				t.ID,
				strconv.Itoa(t.ItemID),
				it.Name,
				side,
				strconv.Itoa(t.Price),
				strconv.Itoa(t.Quantity),
				t.Time.Format(time.RFC3339),
			})
			if err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
