package ipc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("missing argument")
	ErrEmptyCommand    = errors.New("empty command")
	ErrLineTooLong     = errors.New("command line too long")
)

const (
	CmdPress = "press"
	CmdType  = "type"
	CmdEval  = "eval"
	CmdClear = "clear"
	CmdGet   = "get"
	CmdShow  = "show"
	CmdHide  = "hide"
	CmdQuit  = "quit"
)

var commandNames = []string{CmdPress, CmdType, CmdEval, CmdClear, CmdGet, CmdShow, CmdHide, CmdQuit}

var needsArgument = map[string]bool{
	CmdPress: true,
	CmdType:  true,
}

// Command is one parsed request line.
type Command struct {
	Name string
	Arg  string
}

func (c Command) String() string {
	if c.Arg == "" {
		return c.Name
	}
	return c.Name + " " + c.Arg
}

// ParseCommand parses "<name> [argument]". Names are case-insensitive;
// the argument is everything after the first run of spaces.
func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}, ErrEmptyCommand
	}

	name, arg, _ := strings.Cut(line, " ")
	name = strings.ToLower(name)
	arg = strings.TrimSpace(arg)

	if !isCommand(name) {
		if s := Suggest(name); s != "" {
			return Command{}, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownCommand, name, s)
		}
		return Command{}, fmt.Errorf("%w %q", ErrUnknownCommand, name)
	}
	if needsArgument[name] && arg == "" {
		return Command{}, fmt.Errorf("%w for %q", ErrMissingArgument, name)
	}
	return Command{Name: name, Arg: arg}, nil
}

func isCommand(name string) bool {
	for _, n := range commandNames {
		if n == name {
			return true
		}
	}
	return false
}

// Suggest returns the closest known command name, or "" if nothing matches.
func Suggest(name string) string {
	matches := fuzzy.Find(name, commandNames)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

// Commands lists the supported command names.
func Commands() []string {
	return append([]string(nil), commandNames...)
}
