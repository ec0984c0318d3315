package core

import (
	"fmt"
	"log"
	"strings"

	"github.com/chess10kp/gocalc/internal/calc"
	"github.com/chess10kp/gocalc/internal/config"
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/gtk"
)

// Window is the calculator's top-level window: menu bar, display and
// button grid.
type Window struct {
	app      *App
	config   *config.Config
	window   *gtk.Window
	display  *gtk.Entry
	buttons  map[string]*gtk.Button
	ctrl     *calc.Controller
	keys     *calc.KeyBindings
	quitKeys []string
}

func NewWindow(app *App, cfg *config.Config, evaluator calc.Evaluator) (*Window, error) {
	window, err := gtk.WindowNew(gtk.WINDOW_TOPLEVEL)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	window.SetTitle(cfg.Window.Title)
	window.SetName("calc-window")
	window.SetDefaultSize(cfg.Window.Width, cfg.Window.Height)
	window.SetSizeRequest(cfg.Window.Width, cfg.Window.Height)
	window.SetResizable(cfg.Window.Resizable)

	box, err := gtk.BoxNew(gtk.ORIENTATION_VERTICAL, cfg.Window.Spacing)
	if err != nil {
		return nil, fmt.Errorf("failed to create box: %w", err)
	}
	window.Add(box)

	w := &Window{
		app:      app,
		config:   cfg,
		window:   window,
		buttons:  make(map[string]*gtk.Button),
		quitKeys: cfg.Keys.Quit,
	}

	if cfg.Window.ShowMenubar {
		menubar, err := w.createMenuBar()
		if err != nil {
			return nil, err
		}
		box.PackStart(menubar, false, false, 0)
	}

	display, err := w.createDisplay()
	if err != nil {
		return nil, err
	}
	box.PackStart(display, false, false, 0)
	w.display = display

	keypad := calc.DefaultKeypad()
	w.ctrl = calc.NewController(calc.WatchDisplay(&entryDisplay{entry: display}, app.displayChanged), keypad, evaluator)
	w.keys = calc.NewKeyBindings(keypad, cfg.Keys.Evaluate, cfg.Keys.Clear)

	grid, err := w.createButtons(keypad)
	if err != nil {
		return nil, err
	}
	box.PackStart(grid, true, true, 0)

	w.setupSignals()

	return w, nil
}

func (w *Window) createMenuBar() (*gtk.MenuBar, error) {
	menubar, err := gtk.MenuBarNew()
	if err != nil {
		return nil, fmt.Errorf("failed to create menu bar: %w", err)
	}

	fileMenu, err := newSubmenu(menubar, "_File")
	if err != nil {
		return nil, err
	}
	if err := addMenuAction(fileMenu, "_Exit", func() { w.app.Quit() }); err != nil {
		return nil, err
	}

	helpMenu, err := newSubmenu(menubar, "_Help")
	if err != nil {
		return nil, err
	}
	if err := addMenuAction(helpMenu, "_About", func() { w.showAbout() }); err != nil {
		return nil, err
	}

	return menubar, nil
}

func newSubmenu(menubar *gtk.MenuBar, label string) (*gtk.Menu, error) {
	item, err := gtk.MenuItemNewWithMnemonic(label)
	if err != nil {
		return nil, fmt.Errorf("failed to create menu item %s: %w", label, err)
	}
	menu, err := gtk.MenuNew()
	if err != nil {
		return nil, fmt.Errorf("failed to create menu %s: %w", label, err)
	}
	item.SetSubmenu(menu)
	menubar.Append(item)
	return menu, nil
}

func addMenuAction(menu *gtk.Menu, label string, action func()) error {
	item, err := gtk.MenuItemNewWithMnemonic(label)
	if err != nil {
		return fmt.Errorf("failed to create menu item %s: %w", label, err)
	}
	item.Connect("activate", action)
	menu.Append(item)
	return nil
}

func (w *Window) createDisplay() (*gtk.Entry, error) {
	entry, err := gtk.EntryNew()
	if err != nil {
		return nil, fmt.Errorf("failed to create display: %w", err)
	}

	entry.SetName("calc-display")
	entry.SetEditable(false)
	entry.SetAlignment(1.0)
	entry.SetSizeRequest(-1, w.config.Window.DisplayHeight)

	return entry, nil
}

func (w *Window) createButtons(keypad *calc.Keypad) (*gtk.Grid, error) {
	grid, err := gtk.GridNew()
	if err != nil {
		return nil, fmt.Errorf("failed to create button grid: %w", err)
	}

	grid.SetName("calc-grid")
	grid.SetRowSpacing(uint(w.config.Window.Spacing))
	grid.SetColumnSpacing(uint(w.config.Window.Spacing))
	grid.SetRowHomogeneous(true)
	grid.SetColumnHomogeneous(true)

	for _, b := range keypad.Buttons() {
		btn, err := gtk.ButtonNewWithLabel(b.Label)
		if err != nil {
			return nil, fmt.Errorf("failed to create button %q: %w", b.Label, err)
		}

		btn.SetSizeRequest(w.config.Window.ButtonWidth, w.config.Window.ButtonHeight)
		btn.SetCanFocus(false)
		if sc, err := btn.GetStyleContext(); err == nil {
			sc.AddClass(buttonClass(b))
		}

		// Bound now, so each closure keeps its own action.
		action := b.Action
		btn.Connect("clicked", func() {
			w.ctrl.Dispatch(action)
		})

		grid.Attach(btn, b.Col, b.Row, 1, 1)
		w.buttons[b.Label] = btn
	}

	return grid, nil
}

func buttonClass(b calc.Button) string {
	switch b.Action.Kind {
	case calc.ActionClear:
		return "calc-clear"
	case calc.ActionEvaluate:
		return "calc-equals"
	}
	if strings.ContainsAny(b.Label, "+-*/()") {
		return "calc-operator"
	}
	return "calc-digit"
}

func (w *Window) setupSignals() {
	w.display.Connect("activate", func() {
		w.ctrl.Submit()
	})

	w.window.Connect("key-press-event", func(_ *gtk.Window, event *gdk.Event) bool {
		keyEvent := gdk.EventKeyNewFromEvent(event)
		if keyEvent == nil {
			return false
		}
		return w.onKeyPress(keyEvent)
	})

	w.window.Connect("destroy", func() {
		w.app.Quit()
	})
}

func (w *Window) onKeyPress(event *gdk.EventKey) bool {
	name := gdk.KeyvalName(event.KeyVal())
	state := gdk.ModifierType(event.State())

	if state&gdk.CONTROL_MASK != 0 {
		combo := "Ctrl+" + name
		for _, k := range w.quitKeys {
			if strings.EqualFold(k, combo) {
				w.app.Quit()
				return true
			}
		}
		return false
	}

	action, ok := w.keys.Resolve(name)
	if !ok {
		return false
	}
	w.ctrl.Dispatch(action)
	return true
}

func (w *Window) showAbout() {
	dialog, err := newAboutDialog(w.window, w.config.About)
	if err != nil {
		log.Printf("Failed to create about dialog: %v", err)
		return
	}
	dialog.Run()
	dialog.Destroy()
}

// Controller returns the controller bound to this window's display.
func (w *Window) Controller() *calc.Controller {
	return w.ctrl
}

func (w *Window) Show() {
	w.window.ShowAll()
	w.window.Present()
	w.display.GrabFocusWithoutSelecting()
}

func (w *Window) Hide() {
	w.window.Hide()
}

// entryDisplay adapts a gtk.Entry to calc.Display.
type entryDisplay struct {
	entry *gtk.Entry
}

func (d *entryDisplay) SetText(text string) {
	d.entry.SetText(text)
}

func (d *entryDisplay) Text() string {
	text, err := d.entry.GetText()
	if err != nil {
		return ""
	}
	return text
}

func (d *entryDisplay) Clear() {
	d.entry.SetText("")
}

func (d *entryDisplay) Focus() {
	d.entry.GrabFocusWithoutSelecting()
	d.entry.SetPosition(-1)
}
