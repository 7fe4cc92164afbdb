// Package clipboard copies link URLs out of the terminal.
package clipboard

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Target is one place copied text can go.
type Target string

const (
	TargetSystem Target = "system"
	TargetOSC52  Target = "osc52"
	TargetTmux   Target = "tmux"
)

// ParseTargets reads a comma separated target list such as "system,osc52".
func ParseTargets(value string) ([]Target, error) {
	var targets []Target
	for _, part := range strings.Split(value, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		switch t := Target(part); t {
		case TargetSystem, TargetOSC52, TargetTmux:
			targets = append(targets, t)
		default:
			return nil, fmt.Errorf("unknown clipboard target %q", part)
		}
	}
	return targets, nil
}

// Runner runs name with args, feeding stdin to it.
type Runner func(stdin string, name string, args ...string) error

// LookPath reports the path of an executable, like exec.LookPath.
type LookPath func(file string) (string, error)

// Option configures a Clipboard
type Option func(*Clipboard)

// Clipboard copies text to each of its targets.
type Clipboard struct {
	targets  []Target
	output   io.Writer
	run      Runner
	lookPath LookPath
	getenv   func(string) string
}

// New creates a clipboard writing to the system clipboard and OSC52.
func New(opts ...Option) *Clipboard {
	c := &Clipboard{
		targets:  []Target{TargetSystem, TargetOSC52},
		output:   os.Stderr,
		run:      runCommand,
		lookPath: exec.LookPath,
		getenv:   os.Getenv,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTargets replaces the target list.
func WithTargets(targets ...Target) Option {
	return func(c *Clipboard) {
		c.targets = targets
	}
}

// WithOutput sets where OSC52 sequences are written.
func WithOutput(w io.Writer) Option {
	return func(c *Clipboard) {
		c.output = w
	}
}

// WithRunner replaces how external clipboard tools are run.
func WithRunner(run Runner, lookPath LookPath) Option {
	return func(c *Clipboard) {
		c.run = run
		c.lookPath = lookPath
	}
}

// WithEnv replaces the environment lookup.
func WithEnv(getenv func(string) string) Option {
	return func(c *Clipboard) {
		c.getenv = getenv
	}
}

// Targets lists the configured targets.
func (c *Clipboard) Targets() []Target {
	return c.targets
}

// Copy writes text to every target. Failing targets do not stop the
// others; their errors are joined.
func (c *Clipboard) Copy(text string) error {
	var errs []error
	for _, target := range c.targets {
		var err error
		switch target {
		case TargetSystem:
			err = c.copyToSystem(text)
		case TargetOSC52:
			err = c.copyWithOSC52(text)
		case TargetTmux:
			err = c.copyToTmux(text)
		default:
			err = fmt.Errorf("unknown clipboard target %q", target)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", target, err))
		}
	}
	return errors.Join(errs...)
}

func (c *Clipboard) copyToSystem(text string) error {
	tool := c.systemTool()
	if tool == nil {
		return errors.New("no system clipboard tool available")
	}
	return c.run(text, tool[0], tool[1:]...)
}

func (c *Clipboard) copyToTmux(text string) error {
	if !c.inTmux() {
		return errors.New("not in a tmux session")
	}
	return c.run(text, "tmux", "load-buffer", "-")
}

func (c *Clipboard) copyWithOSC52(text string) error {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))

	var sequence string
	if c.inTmux() {
		// tmux only forwards OSC52 inside a DCS passthrough
		sequence = fmt.Sprintf("\033Ptmux;\033\033]52;c;%s\007\033\\", encoded)
	} else {
		sequence = fmt.Sprintf("\033]52;c;%s\007", encoded)
	}

	_, err := io.WriteString(c.output, sequence)
	return err
}

func (c *Clipboard) inTmux() bool {
	return c.getenv("TMUX") != ""
}

// systemTool returns the first available clipboard command with its args.
func (c *Clipboard) systemTool() []string {
	for _, tool := range clipboardTools(runtime.GOOS, c.getenv("WAYLAND_DISPLAY") != "") {
		if _, err := c.lookPath(tool[0]); err == nil {
			return tool
		}
	}
	return nil
}

func clipboardTools(goos string, wayland bool) [][]string {
	switch goos {
	case "darwin":
		return [][]string{{"pbcopy"}}
	case "windows":
		return [][]string{{"clip"}}
	case "linux", "freebsd", "openbsd", "netbsd":
		x11 := [][]string{
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
		}
		if wayland {
			return append([][]string{{"wl-copy"}}, x11...)
		}
		return x11
	default:
		return nil
	}
}

func runCommand(stdin string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	return cmd.Run()
}
