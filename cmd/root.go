package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "specter",
		Short: "A single-test judge with structured results",
		Long: `Specter runs one test command (optionally after a setup command) under a
time budget, classifies the outcome as pass or fail, scores it and reports a
structured result for a grading or CI pipeline.

Settings come from flags, INPUT_* environment variables, a dotenv file or a
TOML config file.`,
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd())
	return root
}

var rootCmd = newRootCmd()

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
