package lit

import "github.com/toyz/lit/internal/diagnostics"

// Console receives human-readable startup messages
type Console interface {
	Log(msg string)
}

// ConsoleFunc adapts a function to Console
type ConsoleFunc func(msg string)

// Log calls f(msg)
func (f ConsoleFunc) Log(msg string) { f(msg) }

// DiagnosticsConsole writes console messages through a diagnostics system
type DiagnosticsConsole struct {
	diag *diagnostics.System
}

// NewDiagnosticsConsole wraps diag
func NewDiagnosticsConsole(diag *diagnostics.System) *DiagnosticsConsole {
	return &DiagnosticsConsole{diag: diag}
}

// Log writes msg at info level
func (c *DiagnosticsConsole) Log(msg string) {
	c.diag.Success("%s", msg)
}

// DefaultConsole writes to stdout with colors when attached to a terminal
func DefaultConsole() Console {
	return NewDiagnosticsConsole(diagnostics.New(diagnostics.Info))
}

// quietConsole discards every message
type quietConsole struct{}

func (quietConsole) Log(string) {}

// QuietConsole returns a Console that discards messages
func QuietConsole() Console { return quietConsole{} }
