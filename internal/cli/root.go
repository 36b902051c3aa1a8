// Package cli wires the rsdump commands together.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rsdump",
	Short: "Load CSV files into a warehouse table",
	Long: `rsdump loads a CSV file into a schema-qualified warehouse table,
replacing any existing table of that name.

Credentials are resolved from environment variables sharing a common
prefix (default REDSHIFT): {PREFIX}_USERNAME, {PREFIX}_PASSWORD,
{PREFIX}_HOST, {PREFIX}_PORT and {PREFIX}_DB_NAME. A .env file in the
working directory is loaded first, and an optional rsdump.yaml can
override the CSV path, schema, table and prefix.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or missing credentials
  11 - Database connection failed
  12 - Source CSV file not found`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for rsdump")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
