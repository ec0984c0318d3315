package wm

import (
	"context"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/joshuarubin/go-sway"
)

const commandTimeout = 2 * time.Second

type commandRunner interface {
	RunCommand(ctx context.Context, command string) ([]sway.RunCommandReply, error)
}

// FloatRule builds the sway for_window rule that floats windows titled
// title as they appear.
func FloatRule(title string, sticky bool) string {
	cmds := []string{"floating enable"}
	if sticky {
		cmds = append(cmds, "sticky enable")
	}
	return fmt.Sprintf(`for_window [title="^%s$"] %s`, regexp.QuoteMeta(title), strings.Join(cmds, ", "))
}

// Running reports whether a sway IPC socket is advertised.
func Running() bool {
	return os.Getenv("SWAYSOCK") != ""
}

// FloatWindow installs the float rule for the calculator window. It must
// run before the window is mapped, since sway only applies for_window
// rules to new windows. It is a no-op outside sway.
func FloatWindow(ctx context.Context, title string, sticky bool) error {
	if !Running() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	client, err := sway.New(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to sway: %w", err)
	}
	return run(ctx, client, FloatRule(title, sticky))
}

func run(ctx context.Context, client commandRunner, command string) error {
	replies, err := client.RunCommand(ctx, command)
	if err != nil {
		return fmt.Errorf("sway command %q: %w", command, err)
	}

	var failures []string
	for _, r := range replies {
		if !r.Success {
			failures = append(failures, r.Error)
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("sway command %q failed: %s", command, strings.Join(failures, "; "))
	}

	log.Printf("[SWAY] ran %q", command)
	return nil
}
