package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/flipper/exchange"
	"github.com/rustyeddy/flipper/ledger"
	"github.com/rustyeddy/flipper/tracker"
)

var replayCmd = &cobra.Command{
	Use:   "replay <events.csv>",
	Short: "Feed recorded offer events through the tracker",
	Long: `Replay a CSV of raw offer-state notifications through the normalizer and
ledger, then persist the resulting session.

Expected columns: time,slot,item_id,state,quantity_filled,total_spent
with states buying|selling|bought|sold|cancelled_buy|cancelled_sell|empty.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	store, err := openStore(cfg, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	var meta ledger.MetadataSource
	if cfg.Metadata.Path != "" {
		meta, err = ledger.LoadFileMetadata(cfg.Metadata.Path)
		if err != nil {
			return fmt.Errorf("load metadata: %w", err)
		}
	}

	feed, err := tracker.NewCSVEventFeed(args[0])
	if err != nil {
		return fmt.Errorf("open events: %w", err)
	}
	defer feed.Close()

	l := ledger.New(meta, log)
	tr := tracker.New(l, store, log, tracker.Options{
		Persist: cfg.Display.StoreTradeHistory,
	})
	if err := tr.LoadSession(); err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	events := make(chan exchange.OfferEvent)
	errc := make(chan error, 1)
	go func() {
		defer close(events)
		for {
			ev, ok, err := feed.Next()
			if err != nil {
				errc <- err
				return
			}
			if !ok {
				errc <- nil
				return
			}
			events <- ev
		}
	}()

	if err := tr.Run(context.Background(), events); err != nil {
		return err
	}
	if err := <-errc; err != nil {
		return fmt.Errorf("read events: %w", err)
	}

	fmt.Printf("replayed events: ledger now tracks %d items\n", l.Len())
	return nil
}
