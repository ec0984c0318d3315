package calc

// keyAliases maps toolkit key names onto keypad labels.
var keyAliases = map[string]string{
	"KP_0":        "0",
	"KP_1":        "1",
	"KP_2":        "2",
	"KP_3":        "3",
	"KP_4":        "4",
	"KP_5":        "5",
	"KP_6":        "6",
	"KP_7":        "7",
	"KP_8":        "8",
	"KP_9":        "9",
	"KP_Add":      "+",
	"KP_Subtract": "-",
	"KP_Multiply": "*",
	"KP_Divide":   "/",
	"KP_Decimal":  ".",
	"KP_Equal":    "=",
	"plus":        "+",
	"minus":       "-",
	"asterisk":    "*",
	"slash":       "/",
	"period":      ".",
	"parenleft":   "(",
	"parenright":  ")",
	"equal":       "=",
}

// KeyBindings resolves keyboard key names into keypad actions.
type KeyBindings struct {
	keypad   *Keypad
	evaluate map[string]bool
	clear    map[string]bool
}

func NewKeyBindings(keypad *Keypad, evaluateKeys, clearKeys []string) *KeyBindings {
	if keypad == nil {
		keypad = DefaultKeypad()
	}
	kb := &KeyBindings{
		keypad:   keypad,
		evaluate: make(map[string]bool, len(evaluateKeys)),
		clear:    make(map[string]bool, len(clearKeys)),
	}
	for _, k := range evaluateKeys {
		kb.evaluate[k] = true
	}
	for _, k := range clearKeys {
		kb.clear[k] = true
	}
	return kb
}

// Resolve returns the action for a key name such as "Return", "KP_Add"
// or "7". Configured evaluate and clear keys take precedence over labels.
func (kb *KeyBindings) Resolve(name string) (Action, bool) {
	switch {
	case kb.evaluate[name]:
		return EvaluateAction(), true
	case kb.clear[name]:
		return ClearAction(), true
	}
	label := name
	if alias, ok := keyAliases[name]; ok {
		label = alias
	}
	if b, ok := kb.keypad.Lookup(label); ok {
		return b.Action, true
	}
	return Action{}, false
}
