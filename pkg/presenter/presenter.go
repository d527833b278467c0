// Package presenter provides consistent CLI output for check results and
// user-facing messages, including pass/fail markers, color swatches, and
// success, error, warning and informational output with color support and
// quiet mode.
package presenter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

// Status is the outcome of a single check line
type Status string

const (
	StatusPass    Status = "PASS"
	StatusFail    Status = "FAIL"
	StatusUnknown Status = "UNKNOWN"
)

// StatusOf maps a boolean outcome to PASS or FAIL.
func StatusOf(ok bool) Status {
	if ok {
		return StatusPass
	}
	return StatusFail
}

// Presenter defines the interface for consistent CLI output
type Presenter interface {
	Error(err error, context string)
	Hint(message string)
	Success(message string)
	Warning(message string)
	Info(message string)
	Section(title string)
	Check(label string, status Status, detail string)
	Bullets(title string, items []string)
	Swatch(label, hex string)
	SetQuiet(quiet bool)
}

// TerminalPresenter implements Presenter for terminal output
type TerminalPresenter struct {
	output      io.Writer
	errorOutput io.Writer
	colorMode   ColorMode
	quiet       bool
}

// ColorMode represents different color output modes
type ColorMode int

const (
	// ColorAuto automatically detects whether to use colored output based on terminal capabilities
	ColorAuto ColorMode = iota
	// ColorAlways forces colored output regardless of terminal capabilities
	ColorAlways
	// ColorNever disables colored output regardless of terminal capabilities
	ColorNever
)

// New creates a new TerminalPresenter with default settings
func New() *TerminalPresenter {
	return NewWithOptions(os.Stdout, os.Stderr, detectColorMode())
}

// NewWithOptions creates a TerminalPresenter with custom settings
func NewWithOptions(output, errorOutput io.Writer, colorMode ColorMode) *TerminalPresenter {
	presenter := &TerminalPresenter{
		output:      output,
		errorOutput: errorOutput,
		colorMode:   colorMode,
		quiet:       false,
	}

	switch colorMode {
	case ColorAlways:
		color.NoColor = false
	case ColorNever:
		color.NoColor = true
	case ColorAuto:
		// Let color package auto-detect
	}

	return presenter
}

// detectColorMode determines the appropriate color mode based on environment
func detectColorMode() ColorMode {
	if os.Getenv("NO_COLOR") != "" {
		return ColorNever
	}

	switch os.Getenv("A11Y_COLOR") {
	case "always", "force":
		return ColorAlways
	case "never", "off":
		return ColorNever
	default:
		return ColorAuto
	}
}

// Error displays an error message to stderr
func (p *TerminalPresenter) Error(err error, context string) {
	if err == nil {
		return
	}

	errorColor := color.New(color.FgRed, color.Bold)
	if context != "" {
		errorColor.Fprintf(p.errorOutput, "[ERROR] %s: %v\n", context, err)
	} else {
		errorColor.Fprintf(p.errorOutput, "[ERROR] %v\n", err)
	}
}

// Hint displays a follow-up line for an error on stderr
func (p *TerminalPresenter) Hint(message string) {
	fmt.Fprintf(p.errorOutput, "%s\n", message)
}

// Success displays a success message
func (p *TerminalPresenter) Success(message string) {
	if p.quiet {
		return
	}

	successColor := color.New(color.FgGreen, color.Bold)
	successColor.Fprintf(p.output, "✓ %s\n", message)
}

// Warning displays a warning message
func (p *TerminalPresenter) Warning(message string) {
	if p.quiet {
		return
	}

	warningColor := color.New(color.FgYellow, color.Bold)
	warningColor.Fprintf(p.output, "⚠ %s\n", message)
}

// Info displays an informational message
func (p *TerminalPresenter) Info(message string) {
	if p.quiet {
		return
	}

	fmt.Fprintf(p.output, "%s\n", message)
}

// Section displays a section header with consistent formatting
func (p *TerminalPresenter) Section(title string) {
	if p.quiet {
		return
	}

	headerColor := color.New(color.Bold)
	separator := strings.Repeat("-", len(title))

	headerColor.Fprintf(p.output, "%s\n", title)
	headerColor.Fprintf(p.output, "%s\n", separator)
}

// Check displays one check outcome. Results are the command's output, so
// they are printed in quiet mode too.
func (p *TerminalPresenter) Check(label string, status Status, detail string) {
	var marker *color.Color
	var symbol string
	switch status {
	case StatusPass:
		marker, symbol = color.New(color.FgGreen, color.Bold), "✓"
	case StatusFail:
		marker, symbol = color.New(color.FgRed, color.Bold), "✗"
	default:
		marker, symbol = color.New(color.FgYellow, color.Bold), "?"
	}

	marker.Fprintf(p.output, "%s %-7s", symbol, status)
	if detail != "" {
		fmt.Fprintf(p.output, " %s: %s\n", label, detail)
	} else {
		fmt.Fprintf(p.output, " %s\n", label)
	}
}

// Bullets displays a titled list; nothing is printed for an empty list
func (p *TerminalPresenter) Bullets(title string, items []string) {
	if len(items) == 0 {
		return
	}

	color.New(color.Bold).Fprintf(p.output, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(p.output, "  - %s\n", item)
	}
}

// Swatch displays a color sample next to its hex value. Without color
// support only the label and value are printed.
func (p *TerminalPresenter) Swatch(label, hex string) {
	if color.NoColor {
		fmt.Fprintf(p.output, "%s %s\n", label, hex)
		return
	}

	block := lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Width(6).
		Render("")
	fmt.Fprintf(p.output, "%s %s %s\n", label, block, hex)
}

// SetQuiet enables or disables quiet mode
func (p *TerminalPresenter) SetQuiet(quiet bool) {
	p.quiet = quiet
}

// Global presenter instance for convenience
var defaultPresenter Presenter = New()

// SetDefault replaces the presenter used by the package-level helpers and
// returns the previous one.
func SetDefault(p Presenter) Presenter {
	previous := defaultPresenter
	defaultPresenter = p
	return previous
}

// Error displays an error message using the default presenter instance.
func Error(err error, context string) {
	defaultPresenter.Error(err, context)
}

// Hint displays a follow-up line for an error using the default presenter instance.
func Hint(message string) {
	defaultPresenter.Hint(message)
}

// Success displays a success message using the default presenter instance.
func Success(message string) {
	defaultPresenter.Success(message)
}

// Warning displays a warning message using the default presenter instance.
func Warning(message string) {
	defaultPresenter.Warning(message)
}

// Info displays an informational message using the default presenter instance.
func Info(message string) {
	defaultPresenter.Info(message)
}

// Section displays a section header using the default presenter instance.
func Section(title string) {
	defaultPresenter.Section(title)
}

// Check displays a check outcome using the default presenter instance.
func Check(label string, status Status, detail string) {
	defaultPresenter.Check(label, status, detail)
}

// Bullets displays a titled list using the default presenter instance.
func Bullets(title string, items []string) {
	defaultPresenter.Bullets(title, items)
}

// Swatch displays a color sample using the default presenter instance.
func Swatch(label, hex string) {
	defaultPresenter.Swatch(label, hex)
}

// SetQuiet sets quiet mode on the default presenter instance.
func SetQuiet(quiet bool) {
	defaultPresenter.SetQuiet(quiet)
}
