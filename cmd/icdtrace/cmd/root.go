package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "icdtrace",
	Short: "Electrical trace and voltage-pull checker for ICD driver files",
	Long: `icdtrace loads a driver CSV describing board netlists, harnesses,
device pull behavior, and a list of CHECKTRACE/CHECKVOLT requests, then
reports whether each requested signal pair traces and what voltage each
requested net pulls to.

Examples:
  icdtrace run driver.csv                    # write report to stdout
  icdtrace run driver.csv --out report.csv   # write report to a file`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
