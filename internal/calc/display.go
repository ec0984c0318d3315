package calc

// Display is the single line of text the user sees.
type Display interface {
	SetText(text string)
	Text() string
	Clear()
	Focus()
}

// BufferDisplay keeps the display text in memory. Front ends without a
// widget toolkit, and tests, use it directly.
type BufferDisplay struct {
	text    string
	focused int
}

func NewBufferDisplay() *BufferDisplay {
	return &BufferDisplay{}
}

func (d *BufferDisplay) SetText(text string) { d.text = text }
func (d *BufferDisplay) Text() string        { return d.text }
func (d *BufferDisplay) Clear()              { d.text = "" }
func (d *BufferDisplay) Focus()              { d.focused++ }

// FocusCount reports how many times focus was requested.
func (d *BufferDisplay) FocusCount() int { return d.focused }

// WatchDisplay wraps d so that fn sees the text after every change.
func WatchDisplay(d Display, fn func(text string)) Display {
	return &watchedDisplay{Display: d, fn: fn}
}

type watchedDisplay struct {
	Display
	fn func(text string)
}

func (d *watchedDisplay) SetText(text string) {
	d.Display.SetText(text)
	d.fn(text)
}

func (d *watchedDisplay) Clear() {
	d.Display.Clear()
	d.fn("")
}
