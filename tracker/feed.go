package tracker

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rustyeddy/flipper/exchange"
)

// CSVEventFeed streams recorded offer notifications from a CSV file, the
// replay-side stand-in for the live event source.
type CSVEventFeed struct {
	f *os.File
	r *csv.Reader

	sawFirst bool
}

func NewCSVEventFeed(path string) (*CSVEventFeed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return &CSVEventFeed{f: f, r: r}, nil
}

func (f *CSVEventFeed) Close() error {
	if f.f != nil {
		return f.f.Close()
	}
	return nil
}

// Expected columns:
// time,slot,item_id,state,quantity_filled,total_spent
// A header row is allowed and skipped.
func (f *CSVEventFeed) Next() (exchange.OfferEvent, bool, error) {
	for {
		row, err := f.r.Read()
		if err == io.EOF {
			return exchange.OfferEvent{}, false, nil
		}
		if err != nil {
			return exchange.OfferEvent{}, false, err
		}
		if len(row) < 6 {
			return exchange.OfferEvent{}, false, fmt.Errorf("short row: %v", row)
		}

		if !f.sawFirst {
			f.sawFirst = true
			if row[0] == "time" {
				continue
			}
		}

		ev, err := parseEventRow(row)
		if err != nil {
			return exchange.OfferEvent{}, false, err
		}
		return ev, true, nil
	}
}

func parseEventRow(row []string) (exchange.OfferEvent, error) {
	ts, err := time.Parse(time.RFC3339, row[0])
	if err != nil {
		return exchange.OfferEvent{}, fmt.Errorf("time %q: %w", row[0], err)
	}
	slot, err := strconv.Atoi(row[1])
	if err != nil {
		return exchange.OfferEvent{}, fmt.Errorf("slot %q: %w", row[1], err)
	}
	itemID, err := strconv.Atoi(row[2])
	if err != nil {
		return exchange.OfferEvent{}, fmt.Errorf("item_id %q: %w", row[2], err)
	}
	state, ok := exchange.ParseOfferState(row[3])
	if !ok {
		return exchange.OfferEvent{}, fmt.Errorf("unknown state %q", row[3])
	}
	qty, err := strconv.Atoi(row[4])
	if err != nil {
		return exchange.OfferEvent{}, fmt.Errorf("quantity_filled %q: %w", row[4], err)
	}
	spent, err := strconv.Atoi(row[5])
	if err != nil {
		return exchange.OfferEvent{}, fmt.Errorf("total_spent %q: %w", row[5], err)
	}

	return exchange.OfferEvent{
		Slot:           slot,
		ItemID:         itemID,
		State:          state,
		QuantityFilled: qty,
		TotalSpent:     spent,
		Time:           ts,
	}, nil
}
