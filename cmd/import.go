package cmd

import (
	"fmt"

	"github.com/pawelm/payver/internal/output"
	"github.com/pawelm/payver/internal/store"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a JSON document into the database",
	Long: `Reads variants from a JSON document and rewrites the database with
them. Existing currently-effective rows are replaced wholesale. Use
--format grouped when the document nests parameters under groups with
date ranges.`,
	GroupID: "data",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolvePath(args[0])

		var src store.Store
		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "flat":
			src = store.OpenJSONFile(path, store.KindAuto)
		case "grouped":
			src = store.OpenGroupedJSON(path, store.KindAuto)
		default:
			return fmt.Errorf("unknown format %q (want flat or grouped)", format)
		}
		defer src.Close()

		snap, err := src.LoadAll()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if len(snap.Names) == 0 {
			return fmt.Errorf("document %s contains no variants", path)
		}

		db, err := store.InitSQLite(getBaseDir())
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer db.Close()

		if err := db.SaveAll(snap); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Success("imported %d variants from %s", len(snap.Names), path)
		return nil
	},
}

func init() {
	importCmd.Flags().String("format", "flat", "document format: flat or grouped")
	rootCmd.AddCommand(importCmd)
}
