package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "targetenc",
	Short: "Target encoding for categorical columns",
	Long: `targetenc replaces categorical columns with a statistic of a label
column computed over the rows sharing each category, optionally smoothed
toward the global statistic and perturbed with noise to reduce target
leakage.

Input and output are CSV files; the stage configuration comes from flags,
with defaults from a .targetenc.yaml file and TARGETENC_* environment
variables.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(versionCmd)
}
