package cmd

import (
	"os"

	"github.com/pawelm/payver/internal/config"
	"github.com/pawelm/payver/internal/output"
	"github.com/pawelm/payver/internal/store"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:     "init",
	Short:   "Initialize the parameter database and config folder",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()

		if _, err := os.Stat(store.DBPath(baseDir)); err == nil {
			output.Warning("database already exists: %s", store.DBPath(baseDir))
			return nil
		}

		s, err := store.InitSQLite(baseDir)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer s.Close()

		// Write the default config only when none exists yet
		if _, err := os.Stat(config.Path(baseDir)); os.IsNotExist(err) {
			if err := config.Save(baseDir, &config.Config{Backend: config.BackendSQLite}); err != nil {
				output.Error("write config: %v", err)
				return err
			}
		}

		output.Success("Initialized parameter database at %s", store.DBPath(baseDir))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
