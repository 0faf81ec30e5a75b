package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command; all functionality lives in subcommands.
var rootCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Accounts API server",
	Long: `Accounts API server. Manages user registration, identity lookup and
login/logout session state over a PostgreSQL store.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
