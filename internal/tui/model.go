// Package tui is the terminal front end of the calculator.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chess10kp/gocalc/internal/calc"
	"github.com/chess10kp/gocalc/internal/config"
)

// screen is the terminal's calc.Display. It is focused after every
// controller update and loses focus while the user moves over the grid.
type screen struct {
	text    string
	focused bool
}

func (s *screen) SetText(text string) { s.text = text }
func (s *screen) Text() string        { return s.text }
func (s *screen) Clear()              { s.text = "" }
func (s *screen) Focus()              { s.focused = true }

type Model struct {
	ctrl     *calc.Controller
	keypad   *calc.Keypad
	bindings *calc.KeyBindings
	screen   *screen
	grid     [][]calc.Button
	row, col int
	keys     keyMap
	styles   styles
	width    int
}

// New returns a model driving a fresh controller. A nil evaluator means
// calc.Evaluate.
func New(cfg *config.Config, eval calc.Evaluator) Model {
	keypad := calc.DefaultKeypad()
	s := &screen{focused: true}

	grid := make([][]calc.Button, keypad.Rows())
	for i := range grid {
		grid[i] = make([]calc.Button, keypad.Cols())
	}
	for _, b := range keypad.Buttons() {
		grid[b.Row][b.Col] = b
	}

	return Model{
		ctrl:     calc.NewController(s, keypad, eval),
		keypad:   keypad,
		bindings: calc.NewKeyBindings(keypad, nil, nil),
		screen:   s,
		grid:     grid,
		keys:     defaultKeyMap(),
		styles:   newStyles(cfg.Styling),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.move(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.move(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.move(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.move(0, 1)
	case key.Matches(msg, m.keys.Press):
		if b, ok := m.Selected(); ok {
			m.ctrl.Dispatch(b.Action)
		}
	case key.Matches(msg, m.keys.Evaluate):
		m.ctrl.Submit()
	case key.Matches(msg, m.keys.Clear):
		m.ctrl.OnClear()
	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			if a, ok := m.bindings.Resolve(string(r)); ok {
				m.ctrl.Dispatch(a)
			}
		}
	}
	return m, nil
}

// move shifts the grid cursor, clamped to the keypad and skipping empty
// cells.
func (m *Model) move(dr, dc int) {
	r, c := m.row+dr, m.col+dc
	for r >= 0 && r < len(m.grid) && c >= 0 && c < len(m.grid[r]) {
		if m.grid[r][c].Label != "" {
			m.row, m.col = r, c
			m.screen.focused = false
			return
		}
		r, c = r+dr, c+dc
	}
}

// Selected returns the button under the cursor.
func (m Model) Selected() (calc.Button, bool) {
	b := m.grid[m.row][m.col]
	return b, b.Label != ""
}

// Text returns the display text.
func (m Model) Text() string {
	return m.ctrl.Text()
}
