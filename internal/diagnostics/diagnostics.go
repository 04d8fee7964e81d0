// Package diagnostics provides leveled, human-oriented console output for the
// lit runtime and CLI.
package diagnostics

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Level represents the level of diagnostic output
type Level int

const (
	Silent Level = iota
	Error
	Warn
	Info
	Verbose
	Debug
)

// ParseLevel maps a config string to a Level, defaulting to Info
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent", "quiet":
		return Silent
	case "error":
		return Error
	case "warn", "warning":
		return Warn
	case "verbose":
		return Verbose
	case "debug":
		return Debug
	default:
		return Info
	}
}

// System provides structured, user-friendly output
type System struct {
	mu        sync.Mutex
	level     Level
	useColors bool
	showTime  bool
	output    io.Writer
	errorOut  io.Writer
	indent    int
}

// New creates a diagnostic system writing to stdout and stderr
func New(level Level) *System {
	return &System{
		level:     level,
		useColors: shouldUseColors(),
		showTime:  level >= Verbose,
		output:    os.Stdout,
		errorOut:  os.Stderr,
	}
}

// NewWriter creates a colourless diagnostic system that sends every level to w
func NewWriter(level Level, w io.Writer) *System {
	return &System{
		level:    level,
		output:   w,
		errorOut: w,
	}
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
	infoColor    = color.New(color.FgBlue)
	successColor = color.New(color.FgGreen)
	verboseColor = color.New(color.FgHiBlack)
	debugColor   = color.New(color.FgMagenta)
	headerColor  = color.New(color.FgCyan, color.Bold)
)

// Error outputs error messages (always shown unless silent)
func (d *System) Error(format string, args ...interface{}) {
	if d.level >= Error {
		d.writeMessage(d.errorOut, "ERROR", errorColor, format, args...)
	}
}

// Warn outputs warning messages
func (d *System) Warn(format string, args ...interface{}) {
	if d.level >= Warn {
		d.writeMessage(d.output, "WARN", warnColor, format, args...)
	}
}

// Info outputs informational messages
func (d *System) Info(format string, args ...interface{}) {
	if d.level >= Info {
		d.writeMessage(d.output, "INFO", infoColor, format, args...)
	}
}

// Success outputs success messages with emphasis
func (d *System) Success(format string, args ...interface{}) {
	if d.level >= Info {
		d.writeMessage(d.output, "SUCCESS", successColor, format, args...)
	}
}

// Verbose outputs detailed messages (verbose mode only)
func (d *System) Verbose(format string, args ...interface{}) {
	if d.level >= Verbose {
		d.writeMessage(d.output, "VERBOSE", verboseColor, format, args...)
	}
}

// Debug outputs debug messages (highest verbosity)
func (d *System) Debug(format string, args ...interface{}) {
	if d.level >= Debug {
		d.writeMessage(d.output, "DEBUG", debugColor, format, args...)
	}
}

// Plain writes a line with no level prefix
func (d *System) Plain(format string, args ...interface{}) {
	if d.level >= Info {
		d.writeLine(d.output, d.getIndent()+fmt.Sprintf(format, args...))
	}
}

// Section creates a prominent section header
func (d *System) Section(title string) {
	if d.level >= Info {
		d.writeLine(d.output, d.paint(headerColor, title))
	}
}

// List outputs a bulleted list item
func (d *System) List(format string, args ...interface{}) {
	if d.level >= Info {
		d.writeLine(d.output, d.getIndent()+"- "+fmt.Sprintf(format, args...))
	}
}

// Indent increases the indentation level
func (d *System) Indent() {
	d.indent++
}

// Unindent decreases the indentation level
func (d *System) Unindent() {
	if d.indent > 0 {
		d.indent--
	}
}

// Summary outputs a final summary with statistics, keys sorted
func (d *System) Summary(title string, stats map[string]interface{}) {
	if d.level < Info {
		return
	}
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("\n" + title + "\n")
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("   %s: %v\n", k, stats[k]))
	}
	d.writeLine(d.output, b.String())
}

func (d *System) paint(c *color.Color, s string) string {
	if !d.useColors {
		return s
	}
	return c.Sprint(s)
}

func (d *System) writeMessage(w io.Writer, level string, c *color.Color, format string, args ...interface{}) {
	var out strings.Builder
	out.WriteString(d.getIndent())
	if d.showTime {
		out.WriteString(time.Now().Format("15:04:05 "))
	}
	out.WriteString(d.paint(c, "["+level+"]"))
	out.WriteString(" ")
	out.WriteString(fmt.Sprintf(format, args...))
	d.writeLine(w, out.String())
}

func (d *System) writeLine(w io.Writer, line string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintln(w, line)
}

func (d *System) getIndent() string {
	return strings.Repeat("  ", d.indent)
}

// shouldUseColors determines if colors should be used
func shouldUseColors() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	return !color.NoColor
}
