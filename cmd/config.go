package cmd

import (
	"fmt"

	"github.com/pawelm/payver/internal/config"
	"github.com/pawelm/payver/internal/output"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Show or change the store configuration",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(getBaseDir())
		if err != nil {
			output.Warning("%v", err)
		}
		jsonOut, _ := cmd.Flags().GetBool("json")
		if jsonOut {
			return output.JSON(cfg)
		}
		fmt.Printf("backend:  %s\n", cfg.Backend)
		if cfg.DocumentPath != "" {
			fmt.Printf("document: %s\n", cfg.DocumentPath)
		}
		if cfg.ValueKind != "" {
			fmt.Printf("values:   %s\n", cfg.ValueKind)
		}
		fmt.Printf("path:     %s\n", config.Path(getBaseDir()))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration key",
	Long: `Sets one configuration key and saves the file.

Keys:
  backend   sqlite, json or grouped
  document  path to the JSON document (json/grouped backends)
  values    auto, text or number (JSON value coercion)`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		base := getBaseDir()
		cfg, err := config.Load(base)
		if err != nil {
			output.Warning("%v", err)
		}

		key, value := args[0], args[1]
		switch key {
		case "backend":
			switch value {
			case config.BackendSQLite, config.BackendJSON, config.BackendGrouped:
				cfg.Backend = value
			default:
				return fmt.Errorf("unknown backend %q (want sqlite, json or grouped)", value)
			}
		case "document":
			cfg.DocumentPath = value
		case "values":
			switch value {
			case "auto", "text", "number":
				cfg.ValueKind = value
			default:
				return fmt.Errorf("unknown value kind %q (want auto, text or number)", value)
			}
		default:
			return fmt.Errorf("unknown configuration key %q", key)
		}

		if err := config.Save(base, cfg); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("%s = %s", key, value)
		return nil
	},
}

func init() {
	configCmd.Flags().Bool("json", false, "output as JSON")
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
