// Package ui provides terminal output helpers using charmbracelet libraries.
// All functions gracefully handle non-interactive environments.
package ui

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

var (
	// Styles for consistent visual language
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // orange
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")) // red
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))  // green
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")) // gray
	boldStyle    = lipgloss.NewStyle().Bold(true)
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

	cmdStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	exampleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("248"))

	// Logger configured for terminal output
	Logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
)

// IsInteractive returns true if stdin is a terminal.
// Use this to gate interactive prompts.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsTTY returns true if stdout is a terminal.
// Use this to gate colored output.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// styled applies a style only if output is a TTY
func styled(style lipgloss.Style, s string) string {
	if !IsTTY() {
		return s
	}
	return style.Render(s)
}

// Warn prints a warning message.
func Warn(msg string) {
	Logger.Warn(msg)
}

// Warnf prints a formatted warning message.
func Warnf(format string, args ...interface{}) {
	Logger.Warnf(format, args...)
}

// Error prints an error message.
func Error(msg string) {
	Logger.Error(msg)
}

// Errorf prints a formatted error message.
func Errorf(format string, args ...interface{}) {
	Logger.Errorf(format, args...)
}

// Info prints an info message.
func Info(msg string) {
	Logger.Info(msg)
}

// Infof prints a formatted info message.
func Infof(format string, args ...interface{}) {
	Logger.Infof(format, args...)
}

// Success prints a success message with green styling.
func Success(msg string) {
	fmt.Println(styled(successStyle, "✓ "+msg))
}

// Successf prints a formatted success message.
func Successf(format string, args ...interface{}) {
	Success(fmt.Sprintf(format, args...))
}

// Muted prints a muted/subtle message.
func Muted(msg string) {
	fmt.Println(styled(mutedStyle, msg))
}

// Mutedf prints a formatted muted message.
func Mutedf(format string, args ...interface{}) {
	Muted(fmt.Sprintf(format, args...))
}

// Print prints a plain message.
func Print(msg string) {
	fmt.Println(msg)
}

// Printf prints a formatted message.
func Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// Bold returns bolded text.
func Bold(s string) string {
	return styled(boldStyle, s)
}

// Name returns a styled user/host name.
func Name(s string) string {
	return styled(nameStyle, s)
}

// Path returns a styled file path.
func Path(s string) string {
	return styled(pathStyle, s)
}

// Header returns styled header text.
func Header(s string) string {
	return styled(headerStyle, s)
}

// ErrorText returns styled error text (for inline use, not logging).
func ErrorText(s string) string {
	return styled(errorStyle, s)
}

// WarningText returns styled warning text (for inline use).
func WarningText(s string) string {
	return styled(warningStyle, s)
}

// SuccessText returns styled success text (for inline use).
func SuccessText(s string) string {
	return styled(successStyle, s)
}

// MutedText returns styled muted text (for inline use).
func MutedText(s string) string {
	return styled(mutedStyle, s)
}

// Confirm prompts the user for a yes/no confirmation.
// Returns defaultVal in non-interactive mode.
func Confirm(title, description string, defaultVal bool) bool {
	if !IsInteractive() {
		return defaultVal
	}

	confirmed := defaultVal
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		return false
	}
	return confirmed
}

// Input prompts for a single line of text. Returns defaultVal when not
// interactive or the user enters nothing.
func Input(title, placeholder, defaultVal string) string {
	if !IsInteractive() {
		return defaultVal
	}

	value := defaultVal
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder(placeholder).
				Value(&value),
		),
	)

	if err := form.Run(); err != nil {
		return defaultVal
	}
	if strings.TrimSpace(value) == "" {
		return defaultVal
	}
	return strings.TrimSpace(value)
}

// Password reads a password without echo. Returns an error when stdin is not
// a terminal.
func Password(prompt string) (string, error) {
	if !IsInteractive() {
		return "", fmt.Errorf("cannot prompt for password: stdin is not a terminal")
	}
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

// Logo returns the vpsup banner.
func Logo() string {
	if !IsTTY() {
		return ""
	}
	lines := []string{
		`                                 `,
		` ██╗   ██╗██████╗ ███████╗██╗   ██╗██████╗  `,
		` ██║   ██║██╔══██╗██╔════╝██║   ██║██╔══██╗ `,
		` ██║   ██║██████╔╝███████╗██║   ██║██████╔╝ `,
		` ╚██╗ ██╔╝██╔═══╝ ╚════██║██║   ██║██╔═══╝  `,
		`  ╚████╔╝ ██║     ███████║╚██████╔╝██║      `,
		`   ╚═══╝  ╚═╝     ╚══════╝ ╚═════╝ ╚═╝      `,
	}

	var result strings.Builder
	for _, line := range lines {
		result.WriteString(styled(headerStyle, line))
		result.WriteString("\n")
	}
	return result.String()
}

// Tagline returns the styled tagline.
func Tagline() string {
	if !IsTTY() {
		return "vpsup - fresh VPS bootstrap"
	}
	return styled(mutedStyle, "  fresh VPS bootstrap")
}

// HelpSection returns a styled section header for help text.
func HelpSection(title string) string {
	return styled(headerStyle, title)
}

// HelpCommand formats a command entry for help text.
func HelpCommand(cmd, desc string) string {
	return fmt.Sprintf("  %s  %s", styled(cmdStyle, fmt.Sprintf("%-10s", cmd)), styled(mutedStyle, desc))
}

// HelpExample formats an example for help text.
func HelpExample(example string) string {
	return styled(exampleStyle, "  "+example)
}
