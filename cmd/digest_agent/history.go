package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/digest-agent/internal/observability"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the stored run history",
	Long:  "Prints the runs kept in the history file, oldest first.",
	RunE:  runHistory,
}

var (
	historyLast int
	historyJSON bool
)

func init() {
	historyCmd.Flags().IntVarP(&historyLast, "last", "n", 0, "Only show the N most recent runs")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print the raw JSON instead of a summary")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyLast < 0 {
		return fmt.Errorf("--last must be non-negative")
	}

	hs := historyStore()
	history, err := hs.Load()
	if err != nil {
		return err
	}
	if historyLast > 0 && len(history) > historyLast {
		history = history[len(history)-historyLast:]
	}

	out := cmd.OutOrStdout()
	if historyJSON {
		data, err := json.MarshalIndent(history, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		_, _ = fmt.Fprintln(out, string(data))
		return nil
	}

	observability.NewPrinter(out).PrintHistory(history, hs.Limit())
	return nil
}
