package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version string
	baseDir string

	// Backend selection flags; empty means use the config file.
	flagJSONFile    string
	flagGroupedFile string
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "payver",
	Short: "Payroll parameter verification editor",
	Long: `payver - editor for payroll component configuration parameters ("Weryfikator naliczeń").

Named variants (component codes like 'UOP 2026') each carry a fixed set of
boolean parameters (tak/nie). Data lives in a local SQLite database or in
JSON documents; edits are persisted per variant.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initBaseDir)

	rootCmd.PersistentFlags().StringVar(&flagJSONFile, "file", "", "edit a flat JSON document instead of the database")
	rootCmd.PersistentFlags().StringVar(&flagGroupedFile, "grouped", "", "edit a grouped JSON document instead of the database")

	rootCmd.AddGroup(
		&cobra.Group{ID: "data", Title: "Data Commands:"},
		&cobra.Group{ID: "system", Title: "System Commands:"},
	)
	rootCmd.SetHelpCommandGroupID("system")
	rootCmd.SetCompletionCommandGroupID("system")
}

func initBaseDir() {
	var err error
	baseDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
		os.Exit(1)
	}
}

// getBaseDir returns the base directory for the config folder and database
func getBaseDir() string {
	return baseDir
}
