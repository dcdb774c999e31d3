package cmd

import (
	"fmt"

	"github.com/pawelm/payver/internal/engine"
	"github.com/pawelm/payver/internal/output"
	"github.com/pawelm/payver/internal/schema"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set VARIANT PARAMETER VALUE",
	Short: "Set a parameter value on a variant",
	Long: `Sets one parameter of a variant and writes the whole variant back.

PARAMETER may be the internal key (e.g. do_potracenie) or the display
label (e.g. Potrącenie). Boolean values are normalized to tak/nie; an
empty string clears the parameter.`,
	GroupID: "data",
	Args:    cobra.ExactArgs(3),
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

		name := schema.NormalizeName(args[0])
		if !set.Has(name) {
			err := fmt.Errorf("unknown variant %q", name)
			output.Error("%v", err)
			return err
		}

		key := schema.Key(args[1])

		// Boolean tokens are canonicalized; anything else is free text and
		// goes through verbatim.
		value := args[2]
		if schema.IsBoolean(value) {
			value = schema.Normalize(value)
		}

		if err := eng.SetValue(name, key, value); err != nil {
			output.Error("write failed, change kept locally: %v", err)
			return err
		}
		output.Success("%s: %s = %s", name, schema.Label(key), output.Value(value))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
}
