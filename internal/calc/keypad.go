package calc

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownButton = errors.New("unknown button")

// ActionKind tags what a button press does to the display.
type ActionKind int

const (
	ActionAppend ActionKind = iota
	ActionClear
	ActionEvaluate
)

// Action is the effect bound to a button. Token is only set for appends.
type Action struct {
	Kind  ActionKind
	Token string
}

func Append(token string) Action { return Action{Kind: ActionAppend, Token: token} }

func ClearAction() Action { return Action{Kind: ActionClear} }

func EvaluateAction() Action { return Action{Kind: ActionEvaluate} }

func (a Action) String() string {
	switch a.Kind {
	case ActionAppend:
		return fmt.Sprintf("append(%s)", a.Token)
	case ActionClear:
		return "clear"
	case ActionEvaluate:
		return "evaluate"
	}
	return fmt.Sprintf("action(%d)", int(a.Kind))
}

// Button is one labelled cell of the keypad grid.
type Button struct {
	Label  string
	Row    int
	Col    int
	Action Action
}

const (
	ClearLabel    = "C"
	EvaluateLabel = "="
)

// defaultLayout is the calculator grid, row by row.
var defaultLayout = [][]string{
	{"7", "8", "9", "/", "C"},
	{"4", "5", "6", "*", "("},
	{"1", "2", "3", "-", ")"},
	{"0", "00", ".", "+", "="},
}

// Keypad is the immutable button registry.
type Keypad struct {
	buttons []Button
	byLabel map[string]Button
	rows    int
	cols    int
}

// DefaultKeypad returns the standard 4x5 calculator keypad.
func DefaultKeypad() *Keypad {
	k, err := NewKeypad(defaultLayout)
	if err != nil {
		panic(err)
	}
	return k
}

// NewKeypad builds a keypad from rows of labels. "C" clears, "=" evaluates
// and every other label appends itself.
func NewKeypad(layout [][]string) (*Keypad, error) {
	k := &Keypad{byLabel: make(map[string]Button)}
	for r, row := range layout {
		if len(row) > k.cols {
			k.cols = len(row)
		}
		for c, label := range row {
			if label == "" {
				continue
			}
			if _, dup := k.byLabel[label]; dup {
				return nil, fmt.Errorf("duplicate button %q", label)
			}
			b := Button{Label: label, Row: r, Col: c, Action: actionFor(label)}
			k.buttons = append(k.buttons, b)
			k.byLabel[label] = b
		}
	}
	k.rows = len(layout)
	return k, nil
}

func actionFor(label string) Action {
	switch label {
	case ClearLabel:
		return ClearAction()
	case EvaluateLabel:
		return EvaluateAction()
	}
	return Append(label)
}

// Lookup finds the button with the given label.
func (k *Keypad) Lookup(label string) (Button, bool) {
	b, ok := k.byLabel[label]
	return b, ok
}

// Buttons returns the buttons in row-major order.
func (k *Keypad) Buttons() []Button {
	out := make([]Button, len(k.buttons))
	copy(out, k.buttons)
	return out
}

func (k *Keypad) Rows() int { return k.rows }
func (k *Keypad) Cols() int { return k.cols }

// Tokenize splits text into append tokens, preferring the longest label at
// each position so "100" becomes "1", "00".
func (k *Keypad) Tokenize(text string) ([]string, error) {
	labels := make([]string, 0, len(k.buttons))
	for _, b := range k.buttons {
		if b.Action.Kind == ActionAppend {
			labels = append(labels, b.Label)
		}
	}
	sort.Slice(labels, func(i, j int) bool { return len(labels[i]) > len(labels[j]) })

	var tokens []string
	for i := 0; i < len(text); {
		matched := ""
		for _, l := range labels {
			if len(text)-i >= len(l) && text[i:i+len(l)] == l {
				matched = l
				break
			}
		}
		if matched == "" {
			return nil, fmt.Errorf("%w: %q at offset %d", ErrUnknownButton, text[i:i+1], i)
		}
		tokens = append(tokens, matched)
		i += len(matched)
	}
	return tokens, nil
}
