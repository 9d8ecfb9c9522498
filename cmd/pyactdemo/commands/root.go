package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// verbose enables verbose exception logging for the demo run.
	verbose bool

	logger *zap.Logger
)

// rootCmd is the base command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "pyactdemo",
	Short: "Demonstrates the actor runtime's spawn/link/call surface",
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(
		&verbose, "verbose", false,
		"log abnormal actor termination to stderr",
	)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(echoCmd)
}

func newLogger() *zap.Logger {
	if logger != nil {
		return logger
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		l = zap.NewNop()
	}
	logger = l
	return logger
}
