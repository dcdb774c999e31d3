package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pawelm/payver/internal/engine"
	"github.com/pawelm/payver/internal/output"
	"github.com/pawelm/payver/pkg/grid"
	"github.com/spf13/cobra"
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Interactive parameter grid",
	Long: `Launch the interactive grid editor.

The left pane lists variants; the grid shows every parameter column.
Edits write back per variant as you make them.

Key bindings:
  ↑/↓ or j/k     Move between variants
  ←/→ or h/l     Move between parameter columns
  Enter/Space    Cycle the cell value (tak → nie → empty)
  e              Edit the cell as free text
  a              Add a variant
  d              Delete the selected variant
  r              Reload from the store
  q              Quit`,
	GroupID: "data",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer st.Close()

		eng, loadErr := engine.Load(st)

		model := grid.NewModel(eng, version)
		if loadErr != nil {
			model.SetStatus(fmt.Sprintf("load failed: %v (empty view)", loadErr))
		}

		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running grid: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gridCmd)
}
