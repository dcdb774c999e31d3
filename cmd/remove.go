package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/pawelm/payver/internal/engine"
	"github.com/pawelm/payver/internal/output"
	"github.com/pawelm/payver/internal/schema"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove VARIANT",
	Aliases: []string{"rm"},
	Short:   "Remove a variant and its stored parameters",
	GroupID: "data",
	Args:    cobra.ExactArgs(1),
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

		name := schema.NormalizeName(args[0])
		if !eng.Set().Has(name) {
			err := fmt.Errorf("unknown variant %q", name)
			output.Error("%v", err)
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			var confirmed bool
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title(fmt.Sprintf("Usunąć wariant %s?", name)).
						Description("Wszystkie przypisane parametry zostaną skasowane.").
						Value(&confirmed),
				),
			)
			if err := form.Run(); err != nil {
				return fmt.Errorf("remove cancelled: %w", err)
			}
			if !confirmed {
				output.Info("aborted")
				return nil
			}
		}

		if err := eng.RemoveVariant(name); err != nil {
			output.Warning("variant %s removed locally, but the store delete failed: %v", name, err)
			return err
		}
		output.Success("removed variant %s", name)
		return nil
	},
}

func init() {
	removeCmd.Flags().BoolP("force", "f", false, "skip the confirmation prompt")
	rootCmd.AddCommand(removeCmd)
}
