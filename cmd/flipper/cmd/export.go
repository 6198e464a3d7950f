package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/flipper/journal"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all trades as CSV",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var exportOut string

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
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

	out := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	return journal.ExportCSV(out, loadItems(store, log))
}
