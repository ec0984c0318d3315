package ipc

import (
	"fmt"

	"github.com/chess10kp/gocalc/internal/calc"
)

// WindowControl is the part of the front end that IPC commands can drive.
type WindowControl interface {
	Show()
	Hide()
	Quit()
}

// ControllerHandler applies commands to a calculator controller. Every call
// into the controller or window goes through run, which must execute the
// function on the UI thread and return once it has finished.
type ControllerHandler struct {
	ctrl   *calc.Controller
	window WindowControl
	run    func(func())
}

func NewControllerHandler(ctrl *calc.Controller, window WindowControl, run func(func())) *ControllerHandler {
	if run == nil {
		run = func(f func()) { f() }
	}
	return &ControllerHandler{ctrl: ctrl, window: window, run: run}
}

func (h *ControllerHandler) Handle(cmd Command) (string, error) {
	var (
		reply string
		err   error
	)

	h.run(func() {
		switch cmd.Name {
		case CmdPress:
			err = h.ctrl.Press(cmd.Arg)
			reply = h.ctrl.Text()
		case CmdType:
			err = h.ctrl.Type(cmd.Arg)
			reply = h.ctrl.Text()
		case CmdEval:
			h.ctrl.OnEvaluate()
			reply = h.ctrl.Text()
		case CmdClear:
			h.ctrl.OnClear()
			reply = h.ctrl.Text()
		case CmdGet:
			reply = h.ctrl.Text()
		case CmdShow, CmdHide, CmdQuit:
			if h.window == nil {
				err = fmt.Errorf("%q needs a window", cmd.Name)
				return
			}
			switch cmd.Name {
			case CmdShow:
				h.window.Show()
			case CmdHide:
				h.window.Hide()
			case CmdQuit:
				h.window.Quit()
			}
			reply = "ok"
		default:
			err = fmt.Errorf("%w %q", ErrUnknownCommand, cmd.Name)
		}
	})

	return reply, err
}
