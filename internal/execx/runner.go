// Package execx runs host commands, logging every execution and elevating
// with sudo when the process is not root.
package execx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/stuffbucket/vpsup/internal/logging"
)

// ErrPrivilegeRequired means a mutating action needs root and no usable
// elevation is available.
var ErrPrivilegeRequired = errors.New("root privileges required (re-run as root or configure sudo)")

// Runner executes commands on the host. The interface exists so packages
// that sequence OS commands can be tested without a real host.
type Runner interface {
	// LookPath resolves a binary on PATH.
	LookPath(file string) (string, error)
	// Run executes a command, discarding stdout.
	Run(ctx context.Context, name string, args ...string) error
	// RunInput executes a command with input on stdin.
	RunInput(ctx context.Context, input, name string, args ...string) error
	// Output executes a command and returns its stdout.
	Output(ctx context.Context, name string, args ...string) (string, error)
}

// Host is a Runner for the local machine. With Elevate set, commands are
// decorated with sudo -n when the process is not running as root.
type Host struct {
	// Elevate prefixes commands with sudo for non-root processes.
	Elevate bool
}

var _ Runner = (*Host)(nil)

// NewHost returns a Host runner. elevate selects sudo decoration for
// non-root processes.
func NewHost(elevate bool) *Host {
	return &Host{Elevate: elevate}
}

// IsRoot reports whether the process runs with effective uid 0.
func IsRoot() bool {
	return os.Geteuid() == 0
}

// CanElevate reports whether passwordless sudo is usable right now.
func CanElevate(ctx context.Context) bool {
	if _, err := exec.LookPath("sudo"); err != nil {
		return false
	}
	return exec.CommandContext(ctx, "sudo", "-n", "true").Run() == nil
}

// EnsurePrivilege returns ErrPrivilegeRequired unless the process is root or
// can elevate via passwordless sudo.
func EnsurePrivilege(ctx context.Context) error {
	if IsRoot() || CanElevate(ctx) {
		return nil
	}
	return ErrPrivilegeRequired
}

// Command returns the decorated command line for name and args, quoted for
// display and logging.
func (h *Host) Command(name string, args ...string) string {
	name, args = h.decorate(name, args)
	return shellescape.QuoteCommand(append([]string{name}, args...))
}

func (h *Host) decorate(name string, args []string) (string, []string) {
	if h.Elevate && !IsRoot() {
		return "sudo", append([]string{"-n", name}, args...)
	}
	return name, args
}

func (h *Host) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (h *Host) Run(ctx context.Context, name string, args ...string) error {
	return h.run(ctx, "", name, args)
}

func (h *Host) RunInput(ctx context.Context, input, name string, args ...string) error {
	return h.run(ctx, input, name, args)
}

func (h *Host) run(ctx context.Context, input, name string, args []string) error {
	log := logging.Get()
	display := h.Command(name, args...)
	name, args = h.decorate(name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}
	cmd.Stdout = log.CmdWriter()
	cmd.Stderr = log.CmdWriter()

	log.CmdStart(name, args)
	err := cmd.Run()
	log.CmdEnd(name, err)
	if err != nil {
		return fmt.Errorf("%s: %w", display, err)
	}
	return nil
}

func (h *Host) Output(ctx context.Context, name string, args ...string) (string, error) {
	log := logging.Get()
	display := h.Command(name, args...)
	name, args = h.decorate(name, args)

	log.Cmd(name, args)
	out, err := exec.CommandContext(ctx, name, args...).Output()
	log.CmdOutput(name, out, err)
	if err != nil {
		return "", fmt.Errorf("%s: %w", display, err)
	}
	return string(out), nil
}
