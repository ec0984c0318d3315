package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chess10kp/gocalc/internal/calc"
	"github.com/chess10kp/gocalc/internal/config"
)

const cellWidth = 5

type styles struct {
	display        lipgloss.Style
	displayFocused lipgloss.Style
	digit          lipgloss.Style
	operator       lipgloss.Style
	action         lipgloss.Style
	selected       lipgloss.Style
	help           lipgloss.Style
}

func newStyles(s config.StylingConfig) styles {
	cell := lipgloss.NewStyle().
		Width(cellWidth).
		Align(lipgloss.Center).
		Foreground(lipgloss.Color(s.ForegroundColor))
	display := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(s.DisplayBorderColor)).
		Foreground(lipgloss.Color(s.ForegroundColor)).
		Align(lipgloss.Right).
		Padding(0, 1)

	return styles{
		display:        display,
		displayFocused: display.BorderForeground(lipgloss.Color(s.AccentColor)),
		digit:          cell.Background(lipgloss.Color(s.ButtonBackground)),
		operator:       cell.Background(lipgloss.Color(s.OperatorBackground)),
		action:         cell.Background(lipgloss.Color(s.AccentColor)).Foreground(lipgloss.Color(s.BackgroundColor)),
		selected:       cell.Background(lipgloss.Color(s.ButtonHover)).Bold(true).Underline(true),
		help:           lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

func (m Model) View() string {
	cols := m.keypad.Cols()
	gridWidth := cols*cellWidth + (cols - 1)

	displayStyle := m.styles.display
	if m.screen.focused {
		displayStyle = m.styles.displayFocused
	}
	// Width excludes the border.
	display := displayStyle.Width(gridWidth - 2).Render(m.screen.text)

	rows := make([]string, 0, len(m.grid))
	for r, row := range m.grid {
		cells := make([]string, 0, len(row)*2)
		for c, b := range row {
			if c > 0 {
				cells = append(cells, " ")
			}
			cells = append(cells, m.cellStyle(b, r, c).Render(b.Label))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	help := make([]string, 0, len(m.keys.help()))
	for _, b := range m.keys.help() {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		display,
		strings.Join(rows, "\n"),
		"",
		m.styles.help.Render(strings.Join(help, " • ")),
	)
	if m.width > 0 {
		view = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, view)
	}
	return view
}

func (m Model) cellStyle(b calc.Button, r, c int) lipgloss.Style {
	if r == m.row && c == m.col {
		return m.styles.selected
	}
	switch {
	case b.Action.Kind != calc.ActionAppend:
		return m.styles.action
	case strings.ContainsAny(b.Label, "+-*/()"):
		return m.styles.operator
	}
	return m.styles.digit
}
