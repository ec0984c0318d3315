package bus

import (
	"fmt"
	"log"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/chess10kp/gocalc/internal/calc"
)

const (
	ObjectPath = dbus.ObjectPath("/com/github/chess10kp/gocalc")
	Interface  = "com.github.chess10kp.gocalc.Calculator"
)

const introspectXML = `
<node>
	<interface name="` + Interface + `">
		<method name="Evaluate">
			<arg direction="in" type="s"/>
			<arg direction="out" type="s"/>
		</method>
		<method name="Press">
			<arg direction="in" type="s"/>
			<arg direction="out" type="s"/>
		</method>
		<method name="Clear">
			<arg direction="out" type="s"/>
		</method>
		<method name="Text">
			<arg direction="out" type="s"/>
		</method>
		<signal name="TextChanged">
			<arg type="s"/>
		</signal>
	</interface>` + introspect.IntrospectDataString + `</node>`

// Calculator is the object exported on the session bus. Its exported
// methods are the D-Bus methods.
type Calculator struct {
	ctrl *calc.Controller
	eval calc.Evaluator
	run  func(func())
}

// NewCalculator exposes ctrl. run must execute a function on the UI thread
// and wait for it; eval answers Evaluate calls without touching the display.
func NewCalculator(ctrl *calc.Controller, eval calc.Evaluator, run func(func())) *Calculator {
	if run == nil {
		run = func(f func()) { f() }
	}
	if eval == nil {
		eval = calc.EvaluatorFunc(calc.Evaluate)
	}
	return &Calculator{ctrl: ctrl, eval: eval, run: run}
}

// Evaluate returns the result of expr, or the error marker.
func (c *Calculator) Evaluate(expr string) (string, *dbus.Error) {
	result, err := c.eval.Evaluate(expr)
	if err != nil {
		return calc.ErrorMessage, nil
	}
	return result, nil
}

func (c *Calculator) Press(label string) (string, *dbus.Error) {
	var (
		text string
		err  error
	)
	c.run(func() {
		err = c.ctrl.Press(label)
		text = c.ctrl.Text()
	})
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}
	return text, nil
}

func (c *Calculator) Clear() (string, *dbus.Error) {
	var text string
	c.run(func() {
		c.ctrl.OnClear()
		text = c.ctrl.Text()
	})
	return text, nil
}

func (c *Calculator) Text() (string, *dbus.Error) {
	var text string
	c.run(func() {
		text = c.ctrl.Text()
	})
	return text, nil
}

// Service owns the bus connection and the exported Calculator.
type Service struct {
	name    string
	calc    *Calculator
	conn    *dbus.Conn
	mu      sync.Mutex
	running bool
}

func NewService(name string, calculator *Calculator) *Service {
	return &Service{name: name, calc: calculator}
}

func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("dbus service already running")
	}

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}

	if err := conn.Export(s.calc, ObjectPath, Interface); err != nil {
		conn.Close()
		return fmt.Errorf("failed to export interface: %w", err)
	}
	if err := conn.Export(introspect.Introspectable(introspectXML), ObjectPath, "org.freedesktop.DBus.Introspectable"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to export introspection: %w", err)
	}

	reply, err := conn.RequestName(s.name, dbus.NameFlagDoNotQueue)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to request name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		conn.Close()
		return fmt.Errorf("name %s already owned by another process", s.name)
	}

	s.conn = conn
	s.running = true

	log.Printf("[DBUS] service started on %s", s.name)
	return nil
}

// TextChanged emits the TextChanged signal. The front end calls it for
// every display change, whatever caused it. It does nothing while the
// service is stopped.
func (s *Service) TextChanged(text string) {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return
	}

	if err := conn.Emit(ObjectPath, Interface+".TextChanged", text); err != nil {
		log.Printf("[DBUS] failed to emit TextChanged: %v", err)
	}
}

func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.conn != nil {
		s.conn.ReleaseName(s.name)
		s.conn.Close()
		s.conn = nil
	}

	log.Println("[DBUS] service stopped")
	return nil
}
