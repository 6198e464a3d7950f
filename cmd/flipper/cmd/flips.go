package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/flipper/stats"
)

var flipsCmd = &cobra.Command{
	Use:   "flips <item-id>",
	Short: "Completed flips for one item",
	Long: `Reconstruct the completed buy+sell cycles from an item's trade history.
Flips are derived, never stored; the same history always yields the same flips.`,
	Args: cobra.ExactArgs(1),
	RunE: runFlips,
}

func init() {
	rootCmd.AddCommand(flipsCmd)
}

func runFlips(cmd *cobra.Command, args []string) error {
	itemID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("item id: %w", err)
	}

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

	item, err := findItem(loadItems(store, log), itemID)
	if err != nil {
		return err
	}

	flips := stats.Flips(item.History)
	if len(flips) == 0 {
		fmt.Printf("no completed flips for %s (item %d)\n", item.Name, item.ItemID)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "QTY\tCOST\tREVENUE\tPROFIT\tOPENED\tCLOSED")
	for _, f := range flips {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%s\t%s\n",
			f.Quantity, f.Cost, f.Revenue, f.Profit,
			f.OpenedAt.Format(time.RFC3339), f.ClosedAt.Format(time.RFC3339))
	}
	return w.Flush()
}
