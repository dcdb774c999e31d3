package grid

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/pawelm/payver/internal/engine"
	"github.com/pawelm/payver/internal/schema"
)

const (
	nameColWidth = 14
	minColWidth  = 8
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder

	b.WriteString(m.theme.Header.Render(fmt.Sprintf("payver %s", m.version)))
	if m.changes > 0 {
		b.WriteString(m.theme.Muted.Render(fmt.Sprintf("  ·  %d zmian w tej sesji", m.changes)))
	}
	b.WriteString("\n\n")

	grid := m.renderGrid()
	detail := m.renderDetail()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, grid, " ", detail))
	b.WriteString("\n")

	switch m.mode {
	case modeAdd:
		b.WriteString(m.theme.PanelTitle.Render("Nowy wariant"))
		b.WriteString(" " + m.input.View() + "\n")
	case modeEdit:
		b.WriteString(m.theme.PanelTitle.Render("Edycja"))
		b.WriteString(" " + m.input.View() + "\n")
	case modeConfirm:
		prompt := fmt.Sprintf("Usunąć wariant %s? (y/n)", m.selectedName())
		b.WriteString(m.theme.StatusErr.Render(prompt) + "\n")
	}

	if m.status != "" {
		style := m.theme.Status
		if m.isErr {
			style = m.theme.StatusErr
		}
		b.WriteString(style.Render(ansi.Truncate(m.status, m.width, "…")))
		b.WriteString("\n")
	}

	b.WriteString(m.theme.Help.Render("↑↓←→ move · enter cycle · e edit · a add · d delete · r reload · q quit"))
	return b.String()
}

// renderGrid draws the variant × parameter table.
func (m Model) renderGrid() string {
	set := m.eng.Set()
	cols := set.Columns()

	colWidth := minColWidth
	if len(cols) > 0 {
		avail := m.width*2/3 - nameColWidth - 2
		if w := avail / len(cols); w > colWidth {
			colWidth = w
		}
	}

	var rows []string

	// Column header
	header := pad(m.theme.ColumnHead.Render("Wariant"), nameColWidth)
	for i, key := range cols {
		label := ansi.Truncate(schema.Label(key), colWidth-1, "…")
		cell := m.theme.ColumnHead.Render(label)
		if i == m.col {
			cell = m.theme.Selected.Render(label)
		}
		header += pad(cell, colWidth)
	}
	rows = append(rows, header)

	if set.Len() == 0 {
		rows = append(rows, m.theme.Muted.Render("brak wariantów — naciśnij 'a'"))
	}

	for i, name := range set.Names() {
		nameStyle := m.theme.Name
		marker := " "
		if m.eng.State(name) == engine.WriteFailed {
			nameStyle = m.theme.NameDirty
			marker = "!"
		}
		line := pad(nameStyle.Render(marker+ansi.Truncate(name, nameColWidth-2, "…")), nameColWidth)

		for j, key := range cols {
			value := displayValue(set.GetValue(name, key))
			cell := m.styleValue(value)
			if i == m.row && j == m.col {
				cell = m.theme.Selected.Render(value)
			}
			line += pad(cell, colWidth)
		}

		if i == m.row {
			line = m.theme.Selected.Render("▸") + line
		} else {
			line = " " + line
		}
		rows = append(rows, line)
	}

	return strings.Join(rows, "\n")
}

// renderDetail draws the active parameters of the selected variant.
func (m Model) renderDetail() string {
	var b strings.Builder

	name := m.detail.Current()
	if name == "" {
		return m.theme.Panel.Render(m.theme.Muted.Render("(nic nie wybrano)"))
	}

	b.WriteString(m.theme.PanelTitle.Render(name))
	b.WriteString("\n")

	detailRows := m.detail.Rows()
	if len(detailRows) == 0 {
		b.WriteString(m.theme.Muted.Render("brak aktywnych parametrów"))
	}
	for _, r := range detailRows {
		fmt.Fprintf(&b, "%s %s\n", m.theme.ValueYes.Render("✓"), r.Label)
	}

	return m.theme.Panel.Render(b.String())
}

func (m Model) styleValue(v string) string {
	switch v {
	case schema.Affirmative:
		return m.theme.ValueYes.Render(v)
	case schema.Negative:
		return m.theme.ValueNo.Render(v)
	default:
		return m.theme.Muted.Render(v)
	}
}

// pad right-pads a styled cell to width using the printable width.
func pad(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
