package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/flipper/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats <item-id>",
	Short: "Interval statistics for one item",
	Long: `Compute revenue, expense, profit, quantity flipped, average prices and
ROI for an item over a time span.

Examples:
  flipper stats 560
  flipper stats 560 --span week`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

var statsSpan string

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVarP(&statsSpan, "span", "s", "all", "interval: day|week|month|all")
}

func runStats(cmd *cobra.Command, args []string) error {
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

	span, err := parseReportSpan(statsSpan)
	if err != nil {
		return err
	}
	start, err := span.Start(time.Now(), time.Time{})
	if err != nil {
		return err
	}

	s := stats.Interval(item.History, start)
	fmt.Printf("%s (item %d), span %s\n\n", item.Name, item.ItemID, statsSpan)
	fmt.Printf("  Revenue:          %d\n", s.Revenue)
	fmt.Printf("  Expense:          %d\n", s.Expense)
	fmt.Printf("  Profit:           %d\n", s.Profit)
	fmt.Printf("  Quantity flipped: %d\n", s.Quantity)
	fmt.Printf("  Avg. buy price:   %s\n", formatMaybe(s.AvgBuyPrice, s.HasAvgBuy))
	fmt.Printf("  Avg. sell price:  %s\n", formatMaybe(s.AvgSellPrice, s.HasAvgSell))
	fmt.Printf("  ROI:              %s\n", formatPercent(s.ROIPercent, s.HasROI))
	return nil
}

// parseReportSpan accepts the calendar spans only. The session span needs a
// live session start, which a one-shot report over the persisted ledger
// does not have.
func parseReportSpan(s string) (stats.Span, error) {
	switch span := stats.Span(s); span {
	case stats.SpanDay, stats.SpanWeek, stats.SpanMonth, stats.SpanAll:
		return span, nil
	default:
		return "", fmt.Errorf("span must be one of day|week|month|all, got %q", s)
	}
}

func formatMaybe(v float64, ok bool) string {
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", v)
}

func formatPercent(v float64, ok bool) string {
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", v)
}
