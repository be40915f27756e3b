package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "macroplot",
	Short: "Macroplot post-processes and charts macroeconomic forecasts",
	Long: `Macroplot applies unit conversions, percent-change transforms and
trend-cycle decomposition to forecast series from a wide CSV file, then
renders deviation charts for each configured variable.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}
