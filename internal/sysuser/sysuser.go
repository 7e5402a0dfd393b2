// Package sysuser creates the administrative user on a fresh host and locks
// down the SSH daemon.
package sysuser

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/stuffbucket/vpsup/internal/execx"
)

// usernameRegex matches the names useradd accepts.
var usernameRegex = regexp.MustCompile(`^[a-z_][a-z0-9_-]{0,31}$`)

// ValidateUsername rejects names useradd would refuse or that could escape
// the /home prefix.
func ValidateUsername(name string) error {
	if name == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if !usernameRegex.MatchString(name) {
		return fmt.Errorf("invalid username %q (use lowercase letters, digits, - and _)", name)
	}
	return nil
}

// Options describes the user to create.
type Options struct {
	Username string
	Shell    string
	Password string
	// Groups are supplementary groups beyond sudo, e.g. docker.
	Groups []string
	// AuthorizedKeys are installed into ~user/.ssh/authorized_keys.
	AuthorizedKeys []string
}

// Manager sequences the user-creation commands.
type Manager struct {
	runner execx.Runner
}

// NewManager returns a Manager executing through runner.
func NewManager(runner execx.Runner) *Manager {
	return &Manager{runner: runner}
}

// Exists reports whether the user is already present.
func (m *Manager) Exists(ctx context.Context, username string) bool {
	_, err := m.runner.Output(ctx, "id", "-u", username)
	return err == nil
}

// Create adds the user with a home directory, puts it in the sudo group plus
// any extra groups, and sets the password.
func (m *Manager) Create(ctx context.Context, opts Options) error {
	if err := ValidateUsername(opts.Username); err != nil {
		return err
	}
	shell := opts.Shell
	if shell == "" {
		shell = "/bin/bash"
	}

	if err := m.runner.Run(ctx, "useradd", "-m", "-s", shell, opts.Username); err != nil {
		return fmt.Errorf("creating user %s: %w", opts.Username, err)
	}

	groups := append([]string{"sudo"}, opts.Groups...)
	for _, group := range groups {
		if !m.groupExists(ctx, group) {
			continue
		}
		if err := m.runner.Run(ctx, "usermod", "-aG", group, opts.Username); err != nil {
			return fmt.Errorf("adding %s to group %s: %w", opts.Username, group, err)
		}
	}

	if opts.Password != "" {
		input := opts.Username + ":" + opts.Password + "\n"
		if err := m.runner.RunInput(ctx, input, "chpasswd"); err != nil {
			return fmt.Errorf("setting password for %s: %w", opts.Username, err)
		}
	}

	if len(opts.AuthorizedKeys) > 0 {
		if err := m.InstallAuthorizedKeys(ctx, opts.Username, opts.AuthorizedKeys); err != nil {
			return err
		}
	}

	return nil
}

func (m *Manager) groupExists(ctx context.Context, group string) bool {
	_, err := m.runner.Output(ctx, "getent", "group", group)
	return err == nil
}

// InstallAuthorizedKeys writes the public keys into the user's
// authorized_keys file with the ownership and modes sshd requires.
func (m *Manager) InstallAuthorizedKeys(ctx context.Context, username string, keys []string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}

	// The username is validated, but join defensively anyway.
	home, err := securejoin.SecureJoin("/home", username)
	if err != nil {
		return fmt.Errorf("resolving home for %s: %w", username, err)
	}
	sshDir := home + "/.ssh"
	keysFile := sshDir + "/authorized_keys"

	if err := os.MkdirAll(sshDir, 0700); err != nil {
		return fmt.Errorf("creating %s: %w", sshDir, err)
	}

	content := strings.TrimSpace(strings.Join(keys, "\n")) + "\n"
	if err := os.WriteFile(keysFile, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing %s: %w", keysFile, err)
	}

	owner := username + ":" + username
	if err := m.runner.Run(ctx, "chown", "-R", owner, sshDir); err != nil {
		return fmt.Errorf("chowning %s: %w", sshDir, err)
	}
	return nil
}

// RootAuthorizedKeys returns the keys in /root/.ssh/authorized_keys, one per
// line, for copying to the new user. Missing file yields an empty slice.
func RootAuthorizedKeys() []string {
	data, err := os.ReadFile("/root/.ssh/authorized_keys")
	if err != nil {
		return nil
	}
	var keys []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		keys = append(keys, line)
	}
	return keys
}
