package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sartorproj/gomacrots"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of macroplot",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("macroplot version %s\n", gomacrots.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
