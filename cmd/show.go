package cmd

import (
	"fmt"

	"github.com/pawelm/payver/internal/engine"
	"github.com/pawelm/payver/internal/output"
	"github.com/pawelm/payver/internal/schema"
	"github.com/pawelm/payver/internal/variants"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:     "show VARIANT",
	Short:   "Show a variant's active parameters",
	Long:    `Shows the parameters of one variant. By default only parameters set to "tak" are listed; --all shows the full schema.`,
	GroupID: "data",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer st.Close()

		name := schema.NormalizeName(args[0])

		detail := engine.NewDetail(st)
		if err := detail.Select(name); err != nil {
			output.Error("%v", err)
			return err
		}

		all, _ := cmd.Flags().GetBool("all")
		var rows []variants.Row
		if all {
			rows = detail.AllRows()
		} else {
			rows = detail.Rows()
		}

		jsonOut, _ := cmd.Flags().GetBool("json")
		if jsonOut {
			type jsonRow struct {
				Key   string `json:"key"`
				Label string `json:"label"`
				Value string `json:"value"`
			}
			out := struct {
				Variant string    `json:"variant"`
				Rows    []jsonRow `json:"rows"`
			}{Variant: name}
			for _, r := range rows {
				out.Rows = append(out.Rows, jsonRow{r.Key, r.Label, r.Value})
			}
			return output.JSON(out)
		}

		fmt.Println(output.Name(name))
		if len(rows) == 0 {
			output.Info("  (no active parameters)")
			return nil
		}

		table := make([][]string, 0, len(rows))
		for _, r := range rows {
			table = append(table, []string{r.Label, r.Value})
		}
		fmt.Print(output.Table([]string{"Parametr", "Wartość"}, table))
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("all", false, "show every schema parameter, not only active ones")
	showCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(showCmd)
}
