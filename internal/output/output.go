// Package output provides styled terminal output helpers (success, error,
// warning, table and detail formatting) using lipgloss.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pawelm/payver/internal/schema"
)

var (
	// Styles
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("237")).Padding(0, 1)
	nameStyle    = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	// Value styles: green for "tak", red for "nie", plain otherwise
	valueStyles = map[string]lipgloss.Style{
		schema.Affirmative: lipgloss.NewStyle().Foreground(lipgloss.Color("35")),
		schema.Negative:    lipgloss.NewStyle().Foreground(lipgloss.Color("167")),
	}
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// Value renders a cell value with its token color.
func Value(v string) string {
	if style, ok := valueStyles[schema.Normalize(v)]; ok {
		return style.Render(v)
	}
	if strings.TrimSpace(v) == "" {
		return subtleStyle.Render("—")
	}
	return v
}

// Name renders a variant name.
func Name(n string) string {
	return nameStyle.Render(n)
}

// Table renders rows under a header, columns left-aligned and padded to the
// widest cell. Styling is applied after width calculation so ANSI codes do
// not skew the padding.
func Table(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len([]rune(h))
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len([]rune(cell)) > widths[i] {
				widths[i] = len([]rune(cell))
			}
		}
	}

	var b strings.Builder
	for i, h := range header {
		b.WriteString(headerStyle.Render(pad(h, widths[i])))
		if i < len(header)-1 {
			b.WriteString(" ")
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i, cell := range row {
			padded := pad(cell, widths[i])
			if i == 0 {
				b.WriteString(" " + Name(padded) + " ")
			} else {
				b.WriteString(" " + styleCell(cell, padded) + " ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func styleCell(raw, padded string) string {
	if style, ok := valueStyles[schema.Normalize(raw)]; ok {
		return style.Render(padded)
	}
	if strings.TrimSpace(raw) == "" {
		return subtleStyle.Render(padded)
	}
	return padded
}

func pad(s string, width int) string {
	n := width - len([]rune(s))
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(" ", n)
}
