package calc

import "fmt"

// ErrorMessage replaces the display text when evaluation fails.
const ErrorMessage = "ERROR"

// Evaluator turns expression text into result text.
type Evaluator interface {
	Evaluate(expr string) (string, error)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(expr string) (string, error)

func (f EvaluatorFunc) Evaluate(expr string) (string, error) { return f(expr) }

// Controller maps button presses to display changes. It is not safe for
// concurrent use; front ends call it from their event loop only.
type Controller struct {
	display Display
	keypad  *Keypad
	eval    Evaluator
}

// NewController wires a display to a keypad. A nil keypad means the default
// keypad and a nil evaluator means Evaluate.
func NewController(display Display, keypad *Keypad, eval Evaluator) *Controller {
	if keypad == nil {
		keypad = DefaultKeypad()
	}
	if eval == nil {
		eval = EvaluatorFunc(Evaluate)
	}
	return &Controller{display: display, keypad: keypad, eval: eval}
}

func (c *Controller) Keypad() *Keypad { return c.keypad }

func (c *Controller) Text() string { return c.display.Text() }

// OnToken appends token to whatever the display holds, including a previous
// result or the error marker.
func (c *Controller) OnToken(token string) {
	c.display.SetText(c.display.Text() + token)
	c.display.Focus()
}

func (c *Controller) OnClear() {
	c.display.Clear()
}

// OnEvaluate replaces the display text with its value, or with
// ErrorMessage if it cannot be evaluated.
func (c *Controller) OnEvaluate() {
	c.display.SetText(c.evaluate(c.display.Text()))
	c.display.Focus()
}

// Submit handles the display's enter key.
func (c *Controller) Submit() {
	c.OnEvaluate()
}

func (c *Controller) evaluate(expr string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = ErrorMessage
		}
	}()
	out, err := c.eval.Evaluate(expr)
	if err != nil {
		return ErrorMessage
	}
	return out
}

// Dispatch performs a.
func (c *Controller) Dispatch(a Action) {
	switch a.Kind {
	case ActionAppend:
		c.OnToken(a.Token)
	case ActionClear:
		c.OnClear()
	case ActionEvaluate:
		c.OnEvaluate()
	}
}

// Press dispatches the action bound to the button labelled label.
func (c *Controller) Press(label string) error {
	b, ok := c.keypad.Lookup(label)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownButton, label)
	}
	c.Dispatch(b.Action)
	return nil
}

// Type appends every keypad token in text. Nothing is appended unless all
// of text splits into tokens.
func (c *Controller) Type(text string) error {
	tokens, err := c.keypad.Tokenize(text)
	if err != nil {
		return err
	}
	for _, t := range tokens {
		c.OnToken(t)
	}
	return nil
}
