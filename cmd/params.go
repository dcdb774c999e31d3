package cmd

import (
	"fmt"
	"strings"

	"github.com/pawelm/payver/internal/output"
	"github.com/pawelm/payver/internal/schema"
	"github.com/spf13/cobra"
)

var paramsCmd = &cobra.Command{
	Use:     "params",
	Short:   "Describe the parameter schema",
	Long:    `Lists the fixed parameter schema: internal keys, display labels and the accepted values.`,
	GroupID: "data",
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")
		if jsonOut {
			type param struct {
				Key   string `json:"key"`
				Label string `json:"label"`
			}
			out := make([]param, 0, len(schema.Keys))
			for _, k := range schema.Keys {
				out = append(out, param{Key: k, Label: schema.Label(k)})
			}
			return output.JSON(out)
		}

		var b strings.Builder
		b.WriteString("# Parametry składników\n\n")
		b.WriteString("| Klucz | Etykieta |\n|---|---|\n")
		for _, k := range schema.Keys {
			fmt.Fprintf(&b, "| `%s` | %s |\n", k, schema.Label(k))
		}
		b.WriteString("\nWartości: `tak`, `nie` lub puste. Wpisy inne niż `tak`/`nie` nie są zapisywane do bazy.\n")

		rendered, err := output.RenderMarkdown(b.String())
		if err != nil {
			// fall back to plain text when the terminal can't render
			fmt.Println(b.String())
			return nil
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	paramsCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(paramsCmd)
}
