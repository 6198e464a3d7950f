package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/flipper/config"
	"github.com/rustyeddy/flipper/journal"
	"github.com/rustyeddy/flipper/ledger"
)

var rootCmd = &cobra.Command{
	Use:   "flipper",
	Short: "Track exchange flips and per-item trade statistics",
	Long: `Flipper turns the exchange's raw offer notifications into a durable
per-item trade ledger and profit statistics.

It provides tools for:
  - Recording completed fills into a bounded per-item trade history
  - Reconstructing completed flips (matched buy+sell cycles)
  - Interval-scoped profit, quantity and ROI statistics
  - Persisting the session ledger to JSON or SQLite
  - Exporting trade history as CSV for external analysis`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var (
	cfgPath string
	verbose bool
)

func init() {
	// A .env can point at the config without flags; missing is fine.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default $FLIPPER_CONFIG, else built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func loadConfig() (*config.Config, error) {
	path := cfgPath
	if path == "" {
		path = os.Getenv("FLIPPER_CONFIG")
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(path)
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func openStore(cfg *config.Config, log *zap.Logger) (journal.Store, error) {
	switch cfg.Store.Type {
	case "sqlite":
		return journal.NewSQLite(cfg.Store.DBPath)
	default:
		return journal.NewJSON(cfg.Store.Path, log), nil
	}
}

// loadItems reads the persisted ledger fail-safe: an unreadable snapshot is
// reported as empty, matching how the tracker treats it at session start.
func loadItems(store journal.Store, log *zap.Logger) []ledger.Item {
	items, err := store.Load()
	if err != nil {
		log.Warn("persisted ledger unreadable, treating as empty", zap.Error(err))
		return nil
	}
	return items
}

func findItem(items []ledger.Item, itemID int) (ledger.Item, error) {
	for _, it := range items {
		if it.ItemID == itemID {
			return it, nil
		}
	}
	return ledger.Item{}, fmt.Errorf("item %d not in ledger", itemID)
}
