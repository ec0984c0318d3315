package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chess10kp/gocalc/internal/config"
)

func newTestModel() Model {
	return New(&config.DefaultConfig, nil)
}

func send(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	up    = tea.KeyMsg{Type: tea.KeyUp}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	left  = tea.KeyMsg{Type: tea.KeyLeft}
	right = tea.KeyMsg{Type: tea.KeyRight}
)

func TestTypingAndEvaluate(t *testing.T) {
	testCases := []struct {
		typed string
		want  string
	}{
		{"2+2", "4"},
		{"(3+4)*2", "14"},
		{"1/0", "ERROR"},
		{"7/2", "3.5"},
	}

	for _, tc := range testCases {
		m := send(t, newTestModel(), runes(tc.typed), enter)
		if m.Text() != tc.want {
			t.Errorf("%q: expected %q, got %q", tc.typed, tc.want, m.Text())
		}
	}
}

func TestTypedEqualsEvaluates(t *testing.T) {
	m := send(t, newTestModel(), runes("6*7="))
	if m.Text() != "42" {
		t.Errorf("Expected 42, got %q", m.Text())
	}
}

func TestUnknownRunesIgnored(t *testing.T) {
	m := send(t, newTestModel(), runes("1x2"))
	if m.Text() != "12" {
		t.Errorf("Expected 12, got %q", m.Text())
	}
}

func TestClear(t *testing.T) {
	m := send(t, newTestModel(), runes("123"), esc)
	if m.Text() != "" {
		t.Errorf("Expected empty display, got %q", m.Text())
	}

	m = send(t, newTestModel(), runes("12C"))
	if m.Text() != "" {
		t.Errorf("Expected C to clear, got %q", m.Text())
	}
}

func TestCursorPress(t *testing.T) {
	m := send(t, newTestModel(), down, right, space)
	if b, _ := m.Selected(); b.Label != "5" {
		t.Fatalf("Expected cursor on 5, got %q", b.Label)
	}
	if m.Text() != "5" {
		t.Errorf("Expected 5, got %q", m.Text())
	}

	m = send(t, m, up, up, left, left, space)
	if b, _ := m.Selected(); b.Label != "7" {
		t.Errorf("Cursor should clamp at top left, got %q", b.Label)
	}
	if m.Text() != "57" {
		t.Errorf("Expected 57, got %q", m.Text())
	}
}

func TestCursorPressEvaluate(t *testing.T) {
	m := send(t, newTestModel(), runes("9-4"))
	for i := 0; i < 4; i++ {
		m = send(t, m, down, right)
	}
	if b, _ := m.Selected(); b.Label != "=" {
		t.Fatalf("Expected cursor on =, got %q", b.Label)
	}

	m = send(t, m, space)
	if m.Text() != "5" {
		t.Errorf("Expected 5, got %q", m.Text())
	}
}

func TestFocusFollowsUpdates(t *testing.T) {
	m := send(t, newTestModel(), right)
	if m.screen.focused {
		t.Error("Moving over the grid should drop display focus")
	}

	m = send(t, m, runes("1"))
	if !m.screen.focused {
		t.Error("Appending should focus the display")
	}
}

func TestQuit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := newTestModel().Update(msg)
		if cmd == nil {
			t.Fatalf("%v: expected quit command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v: expected tea.QuitMsg", msg)
		}
	}
}

func TestViewShowsDisplayAndKeypad(t *testing.T) {
	m := send(t, newTestModel(), runes("1/0"), enter)
	view := m.View()

	for _, want := range []string{"ERROR", "7", "00", "C", "="} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
}
