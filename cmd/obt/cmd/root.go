package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "obt",
	Short: "A bar-by-bar backtesting engine for trading strategies",
	Long: `obt replays historical OHLCV data against trading strategies and
reports how they would have performed.

It provides tools for:
  - Backtesting strategies bar by bar over CSV price data
  - Round-trip and free-form (grid) trade accounting
  - Take-profit and stop-loss watchers
  - Post-run analytics with a buy-and-hold benchmark
  - Persisting runs to SQLite or CSV for later comparison
  - Serving results over HTTP for dashboards`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
