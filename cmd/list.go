package cmd

import (
	"fmt"

	"github.com/pawelm/payver/internal/engine"
	"github.com/pawelm/payver/internal/output"
	"github.com/pawelm/payver/internal/schema"
	"github.com/pawelm/payver/internal/store"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all variants with their parameter values",
	GroupID: "data",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer st.Close()

		dates, _ := cmd.Flags().GetBool("dates")
		if dates {
			grouped, ok := st.(*store.GroupedJSON)
			if !ok {
				return fmt.Errorf("--dates requires a grouped document (use --grouped or the grouped backend)")
			}
			return listDates(grouped)
		}

		eng, err := engine.Load(st)
		if err != nil {
			output.Error("%v", err)
			// Empty view, not fatal
		}
		set := eng.Set()

		jsonOut, _ := cmd.Flags().GetBool("json")
		if jsonOut {
			doc := make(map[string]map[string]string, set.Len())
			active := make(map[string][]string, set.Len())
			for _, name := range set.Names() {
				doc[name] = set.Params(name)
				for _, r := range set.Affirmative(name) {
					active[name] = append(active[name], r.Key)
				}
			}
			return output.JSON(struct {
				Variants []string                     `json:"variants"`
				Params   map[string]map[string]string `json:"parameters"`
				Active   map[string][]string          `json:"active"`
			}{set.Names(), doc, active})
		}

		if set.Len() == 0 {
			output.Info("No variants.")
			return nil
		}

		cols := set.Columns()
		header := make([]string, 0, len(cols)+1)
		header = append(header, "Wariant")
		for _, key := range cols {
			header = append(header, schema.Label(key))
		}

		rows := make([][]string, 0, set.Len())
		for _, name := range set.Names() {
			row := make([]string, 0, len(cols)+1)
			row = append(row, name)
			for _, r := range set.Full(name) {
				row = append(row, r.Value)
			}
			rows = append(rows, row)
		}

		fmt.Print(output.Table(header, rows))
		return nil
	},
}

// listDates prints every grouped entry with its validity range.
func listDates(g *store.GroupedJSON) error {
	entries, err := g.Entries()
	if err != nil {
		output.Error("%v", err)
		return err
	}
	if len(entries) == 0 {
		output.Info("No entries.")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Group, schema.Label(e.Name), e.DataOd, e.DataDo, e.Value})
	}
	fmt.Print(output.Table([]string{"Grupa", "Parametr", "Data od", "Data do", "Wartość"}, rows))
	return nil
}

func init() {
	listCmd.Flags().Bool("json", false, "output as JSON")
	listCmd.Flags().Bool("dates", false, "show grouped entries with their validity dates")
	rootCmd.AddCommand(listCmd)
}
