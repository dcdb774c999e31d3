package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pawelm/payver/internal/engine"
	"github.com/pawelm/payver/internal/output"
	"github.com/pawelm/payver/internal/schema"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [VARIANT]",
	Short: "Add a new variant",
	Long: `Adds a new variant with an empty parameter schema. The name is
upper-cased. When no name is given, prompts interactively.`,
	GroupID: "data",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer st.Close()

		eng, err := engine.Load(st)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		set := eng.Set()

		var name string
		if len(args) == 1 {
			name = args[0]
		} else {
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("Nazwa wariantu").
						Description("Kod składnika płacowego, np. A001").
						Value(&name).
						Validate(func(s string) error {
							s = strings.TrimSpace(s)
							if s == "" {
								return fmt.Errorf("name cannot be empty")
							}
							if set.Has(schema.NormalizeName(s)) {
								return fmt.Errorf("variant %q already exists", schema.NormalizeName(s))
							}
							return nil
						}),
				),
			)
			if err := form.Run(); err != nil {
				return fmt.Errorf("add cancelled: %w", err)
			}
		}

		added, err := eng.AddVariant(name)
		if err != nil {
			if added != "" && eng.State(added) == engine.WriteFailed {
				output.Warning("variant %s added locally, but the write failed: %v", added, err)
				return err
			}
			output.Error("%v", err)
			return err
		}
		output.Success("added variant %s", added)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
