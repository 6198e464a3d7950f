package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "List the items in the session ledger",
	Long: `List every item in the persisted ledger, most recently traded first,
with its cached latest buy and sell prices.`,
	Args: cobra.NoArgs,
	RunE: runLedger,
}

func init() {
	rootCmd.AddCommand(ledgerCmd)
}

func runLedger(cmd *cobra.Command, args []string) error {
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

	items := loadItems(store, log)
	if len(items) == 0 {
		fmt.Println("ledger is empty")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tNAME\tLIMIT\tTRADES\tLAST BUY\tLAST SELL\tLAST TRADED")
	for _, it := range items {
		last := it.LatestBuyTime
		if it.LatestSellTime.After(last) {
			last = it.LatestSellTime
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%s\n",
			it.ItemID, it.Name, it.BuyLimit, len(it.History),
			it.LatestBuyPrice, it.LatestSellPrice,
			last.Format(time.RFC3339))
	}
	return w.Flush()
}
