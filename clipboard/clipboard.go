// Package clipboard copies dialog results, such as a chosen path, to the
// user's clipboard.
package clipboard

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Method selects how text reaches the clipboard
type Method int

const (
	Auto   Method = iota // system clipboard locally, OSC52 over SSH
	System               // system clipboard only
	OSC52                // terminal escape sequence only
)

// ParseMethod parses "auto", "system" or "osc52"
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "system":
		return System, nil
	case "osc52":
		return OSC52, nil
	}
	return Auto, fmt.Errorf("unknown clipboard method %q", s)
}

// Copier writes text to the clipboard
type Copier struct {
	method Method
	isSSH  bool
	// output receives OSC52 sequences (typically the terminal)
	output io.Writer
	// writeSystem is the system clipboard; replaced in tests
	writeSystem func(string) error
}

// New creates a Copier. A nil output writes OSC52 sequences to stdout.
func New(output io.Writer, method Method) *Copier {
	if output == nil {
		output = os.Stdout
	}
	return &Copier{
		method:      method,
		isSSH:       isSSHSession(),
		output:      output,
		writeSystem: clipboard.WriteAll,
	}
}

// isSSHSession detects if we're running in an SSH session
func isSSHSession() bool {
	for _, v := range []string{"SSH_TTY", "SSH_CLIENT", "SSH_CONNECTION"} {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// Copy puts text on the clipboard. In Auto mode a failing system clipboard
// falls back to OSC52.
func (c *Copier) Copy(text string) error {
	switch c.method {
	case OSC52:
		return c.copyOSC52(text)
	case System:
		if err := c.writeSystem(text); err != nil {
			return fmt.Errorf("system clipboard: %w", err)
		}
		return nil
	}

	if c.isSSH || clipboard.Unsupported {
		return c.copyOSC52(text)
	}
	if err := c.writeSystem(text); err != nil {
		return c.copyOSC52(text)
	}
	return nil
}

func (c *Copier) copyOSC52(text string) error {
	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	}
	_, err := io.WriteString(c.output, seq.String())
	return err
}

// IsSSH returns true if we're in an SSH session
func (c *Copier) IsSSH() bool {
	return c.isSSH
}
