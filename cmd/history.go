package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"thoreinstein.com/tally/pkg/bootstrap"
	"thoreinstein.com/tally/pkg/history"
)

// historyCmd gives scripted access to the same CSV store the interactive
// history command manages.
var historyCmd = &cobra.Command{
	Use:   "history [term]",
	Short: "View or search the calculation history",
	Long: `View or search the persisted calculation history without starting an
interactive session.

Examples:
  tally history                 # Show recent calculations
  tally history multiply        # Search all fields for "multiply"
  tally history --limit 5       # Show the last 5 calculations`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		term := ""
		if len(args) > 0 {
			term = args[0]
		}
		return runHistoryCommand(term)
	},
}

var historyLimit int

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Maximum number of entries to show (0 for all)")
}

func runHistoryCommand(term string) error {
	cfg, err := loadConfig()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	logger, closeLog := bootstrap.NewLogger(cfg, verbose)
	defer func() { _ = closeLog() }()

	store := history.Open(cfg.History.FilePath, logger)

	if term != "" {
		return printSearch(store, term)
	}

	entries := store.Get(historyLimit)
	if len(entries) == 0 {
		fmt.Println("No calculation history found.")
		return nil
	}

	offset := store.Len() - len(entries)
	fmt.Printf("Calculation History (showing %d records):\n", len(entries))
	fmt.Print(history.FormatEntries(entries, offset))
	return nil
}

func printSearch(store *history.Store, term string) error {
	var count int
	for i, e := range store.Get(0) {
		if e.Matches(term) {
			if count == 0 {
				fmt.Printf("Search Results for '%s':\n", term)
			}
			fmt.Print(history.FormatEntries([]history.Entry{e}, i))
			count++
		}
	}
	if count == 0 {
		fmt.Printf("No matches found for '%s'.\n", term)
	}
	return nil
}
