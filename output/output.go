// Package output provides styled terminal output for the anvil CLI.
//
// Functions use lipgloss for styling but abstract away the details from callers.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var (
	mu          sync.Mutex
	out         io.Writer = os.Stdout
	verboseMode bool
)

// SetOutput redirects all output (os.Stdout by default).
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stdout
	}
	out = w
}

// SetVerbose enables or disables verbose output for debugging.
// This should be called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = v
}

// Success prints a success message with 🔨 and green color.
// Use this for completed operations.
//
// Example:
//
//	output.Success("Generated models/user.go")
func Success(msg string) {
	printStyled(successStyle, "🔨 "+msg)
}

// Error prints an error message with ❌ emoji and red color.
// Use this for failures that need user attention.
func Error(msg string) {
	printStyled(errorStyle, "❌ "+msg)
}

// Info prints an informational message in cyan.
func Info(msg string) {
	printStyled(infoStyle, "ℹ️  "+msg)
}

// Step prints an indented step message in gray.
//
// Example:
//
//	output.Step("models/user.go")
func Step(msg string) {
	printStyled(stepStyle, "   "+msg)
}

// Verbose prints a debug message only if verbose mode is enabled.
func Verbose(msg string) {
	mu.Lock()
	v := verboseMode
	mu.Unlock()
	if v {
		printStyled(stepStyle, "🔍 "+msg)
	}
}

// Writer returns the current destination, for callers that print
// unstyled text such as diffs.
func Writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

func printStyled(style lipgloss.Style, msg string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out, style.Render(msg))
}
