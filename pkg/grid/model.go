// Package grid is the interactive master–detail editor for payroll
// parameter variants. The grid pane shows every variant against the full
// parameter schema; the detail pane shows the active parameters of the
// selected variant. Edits go through the sync engine, so each change is
// written back per variant as it happens.
package grid

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pawelm/payver/internal/engine"
	"github.com/pawelm/payver/internal/schema"
	"github.com/pawelm/payver/internal/variants"
)

// modelEventMsg carries a model change notification into the update loop.
type modelEventMsg variants.Event

// mode is the grid's input mode.
type mode int

const (
	modeGrid mode = iota
	modeAdd
	modeEdit
	modeConfirm
)

// Model is the Bubble Tea model for the grid editor.
type Model struct {
	eng    *engine.Engine
	detail *engine.Detail
	theme  Theme

	version string

	// Window dimensions
	width  int
	height int

	// Cursor position: row selects the variant, col the parameter column.
	row int
	col int

	mode   mode
	input  textinput.Model
	status string
	isErr  bool

	// events receives model change notifications from the Set's listener
	// contract; changes counts them for the session header.
	events  chan variants.Event
	changes int
}

// NewModel builds a grid over an already-loaded engine.
func NewModel(eng *engine.Engine, version string) Model {
	ti := textinput.New()
	ti.CharLimit = 64

	events := make(chan variants.Event, 16)
	eng.Set().Subscribe(func(ev variants.Event) {
		select {
		case events <- ev:
		default:
		}
	})

	m := Model{
		eng:     eng,
		detail:  eng.Detail(),
		theme:   DefaultTheme(),
		version: version,
		input:   ti,
		events:  events,
	}
	m.syncDetail()
	return m
}

// WithTheme returns a copy of the model using the given theme.
func (m Model) WithTheme(t Theme) Model {
	m.theme = t
	return m
}

// SetStatus sets the status line before the program starts.
func (m *Model) SetStatus(s string) {
	m.status = s
	m.isErr = true
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.nextEvent
}

// nextEvent delivers the next model change as a message.
func (m Model) nextEvent() tea.Msg {
	return modelEventMsg(<-m.events)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case modelEventMsg:
		m.changes++
		return m, m.nextEvent

	case tea.KeyMsg:
		switch m.mode {
		case modeAdd, modeEdit:
			return m.updateInput(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateGrid(msg)
		}
	}
	return m, nil
}

func (m Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	set := m.eng.Set()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.row > 0 {
			m.row--
			m.syncDetail()
		}
	case "down", "j":
		if m.row < set.Len()-1 {
			m.row++
			m.syncDetail()
		}
	case "left", "h":
		if m.col > 0 {
			m.col--
		}
	case "right", "l":
		if m.col < len(set.Columns())-1 {
			m.col++
		}

	case "enter", " ":
		m.cycleCell()

	case "e":
		if set.Len() == 0 {
			break
		}
		m.mode = modeEdit
		m.input.Placeholder = "wartość"
		m.input.SetValue(set.GetValue(m.selectedName(), m.selectedKey()))
		m.input.Focus()
		return m, textinput.Blink

	case "a":
		m.mode = modeAdd
		m.input.Placeholder = "kod składnika, np. A001"
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case "d":
		if set.Len() > 0 {
			m.mode = modeConfirm
		}

	case "r":
		if err := m.eng.Reload(); err != nil {
			m.setError("reload failed: %v", err)
			break
		}
		m.clampCursor()
		m.syncDetail()
		m.setInfo("reloaded")
	}

	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeGrid
		m.input.Blur()
		return m, nil

	case "enter":
		value := m.input.Value()
		wasAdd := m.mode == modeAdd
		m.mode = modeGrid
		m.input.Blur()

		if wasAdd {
			m.addVariant(value)
		} else {
			m.setCell(value)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.mode = modeGrid
		m.removeVariant()
	case "n", "N", "esc", "q":
		m.mode = modeGrid
	}
	return m, nil
}

// cycleCell advances the selected cell tak → nie → empty → tak.
func (m *Model) cycleCell() {
	set := m.eng.Set()
	if set.Len() == 0 {
		return
	}

	var next string
	switch set.GetValue(m.selectedName(), m.selectedKey()) {
	case schema.Affirmative:
		next = schema.Negative
	case schema.Negative:
		next = schema.Unset
	default:
		next = schema.Affirmative
	}
	m.setCell(next)
}

// setCell writes one cell value through the engine. The model keeps the
// edit even when the store write fails; the failure lands in the status
// line and the variant is marked until a write succeeds or a reload runs.
func (m *Model) setCell(value string) {
	name, key := m.selectedName(), m.selectedKey()
	if err := m.eng.SetValue(name, key, value); err != nil {
		m.setError("%s: write failed: %v", name, err)
	} else {
		m.setInfo("%s: %s = %s", name, schema.Label(key), displayValue(value))
	}
	m.refreshDetail()
}

func (m *Model) addVariant(name string) {
	added, err := m.eng.AddVariant(name)
	if err != nil && added == "" {
		m.setError("%v", err)
		return
	}
	if err != nil {
		m.setError("%s: added locally, write failed: %v", added, err)
	} else {
		m.setInfo("added %s", added)
	}
	m.row = m.eng.Set().IndexOf(added)
	m.syncDetail()
}

func (m *Model) removeVariant() {
	name := m.selectedName()
	if err := m.eng.RemoveVariant(name); err != nil {
		m.setError("%s: removed locally, store delete failed: %v", name, err)
	} else {
		m.setInfo("removed %s", name)
	}
	m.clampCursor()
	m.syncDetail()
}

// syncDetail points the detail coordinator at the selected variant.
// Re-selecting the same variant is a no-op inside the coordinator.
func (m *Model) syncDetail() {
	set := m.eng.Set()
	if set.Len() == 0 {
		m.detail.Clear()
		return
	}
	if err := m.detail.Select(m.selectedName()); err != nil {
		m.setError("detail load failed: %v", err)
	}
}

// refreshDetail rebuilds the detail rows after an edit, bypassing the
// reselection guard.
func (m *Model) refreshDetail() {
	if err := m.detail.Refresh(); err != nil {
		m.setError("detail refresh failed: %v", err)
	}
}

func (m *Model) clampCursor() {
	set := m.eng.Set()
	if m.row >= set.Len() {
		m.row = set.Len() - 1
	}
	if m.row < 0 {
		m.row = 0
	}
	if cols := len(set.Columns()); m.col >= cols && cols > 0 {
		m.col = cols - 1
	}
}

func (m *Model) selectedName() string {
	return m.eng.Set().At(m.row)
}

func (m *Model) selectedKey() string {
	cols := m.eng.Set().Columns()
	if m.col >= len(cols) {
		return ""
	}
	return cols[m.col]
}

func (m *Model) setInfo(format string, args ...interface{}) {
	m.status = fmt.Sprintf(format, args...)
	m.isErr = false
}

func (m *Model) setError(format string, args ...interface{}) {
	m.status = fmt.Sprintf(format, args...)
	m.isErr = true
}

func displayValue(v string) string {
	if v == "" {
		return "—"
	}
	return v
}
