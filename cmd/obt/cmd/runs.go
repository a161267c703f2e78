package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/openbacktest/obt/journal"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs from a SQLite journal",
	Long: `Print every recorded run, newest first, with its headline figures.

Example:
  obt runs --db ./runs.db`,
	RunE: runRuns,
}

var runsDBPath string

func init() {
	rootCmd.AddCommand(runsCmd)

	runsCmd.Flags().StringVar(&runsDBPath, "db", "./runs.db", "path to the SQLite journal")
}

func runRuns(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(runsDBPath)
	if err != nil {
		return err
	}
	defer j.Close()

	runs, err := j.ListRuns()
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}

	for _, r := range runs {
		created := time.UnixMilli(r.Created).UTC().Format("2006-01-02 15:04")
		fmt.Printf("%s  %s  %-10s %-12s trades=%-4d profit=%+.2f (%.2f%%) maxdd=%.2f%%\n",
			r.RunID, created, r.Pair, r.Strategy, r.Trades, r.Profit, r.ReturnPct, r.MaxDrawdown)
	}
	return nil
}
