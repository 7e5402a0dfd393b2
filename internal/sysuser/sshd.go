package sysuser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const sshdConfigPath = "/etc/ssh/sshd_config"

// Directive is a single sshd_config setting.
type Directive struct {
	Key   string
	Value string
}

// HardeningDirectives are the settings applied by LockdownSSH: key-only
// authentication, no root login.
var HardeningDirectives = []Directive{
	{"PermitRootLogin", "no"},
	{"PasswordAuthentication", "no"},
	{"PubkeyAuthentication", "yes"},
	{"KbdInteractiveAuthentication", "no"},
	{"ChallengeResponseAuthentication", "no"},
}

// ApplyDirectives rewrites sshd_config content so that each directive is set
// to the wanted value. The first matching line (active or commented out) is
// replaced in place, later duplicates are commented out, and directives not
// present are appended.
func ApplyDirectives(content string, directives []Directive) string {
	lines := strings.Split(content, "\n")
	applied := make(map[string]bool, len(directives))

	for i, line := range lines {
		for _, d := range directives {
			if !matchesDirective(line, d.Key) {
				continue
			}
			if applied[d.Key] {
				lines[i] = "#" + line
			} else {
				lines[i] = d.Key + " " + d.Value
				applied[d.Key] = true
			}
			break
		}
	}

	var missing []string
	for _, d := range directives {
		if !applied[d.Key] {
			missing = append(missing, d.Key+" "+d.Value)
		}
	}
	if len(missing) > 0 {
		out := strings.TrimRight(strings.Join(lines, "\n"), "\n")
		return out + "\n\n" + strings.Join(missing, "\n") + "\n"
	}
	return strings.Join(lines, "\n")
}

// matchesDirective reports whether line sets (or comments out a setting of)
// the given sshd_config key.
func matchesDirective(line, key string) bool {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "#")
	trimmed = strings.TrimSpace(trimmed)
	fields := strings.Fields(trimmed)
	if len(fields) < 2 {
		return false
	}
	return strings.EqualFold(fields[0], key)
}

// DirectiveValue returns the active value of key in sshd_config content, or
// "" when the key is unset or only present commented out.
func DirectiveValue(content, key string) string {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) >= 2 && strings.EqualFold(fields[0], key) {
			return fields[1]
		}
	}
	return ""
}

// LockdownSSH applies the hardening directives to /etc/ssh/sshd_config and
// restarts the daemon. The original file is copied to backupDir and next to
// itself as sshd_config.bak before the rewrite.
func (m *Manager) LockdownSSH(ctx context.Context, backupDir string) error {
	data, err := os.ReadFile(sshdConfigPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", sshdConfigPath, err)
	}

	if backupDir != "" {
		if err := os.MkdirAll(backupDir, 0755); err != nil {
			return fmt.Errorf("creating backup dir: %w", err)
		}
		backup := filepath.Join(backupDir, "sshd_config")
		if err := os.WriteFile(backup, data, 0600); err != nil {
			return fmt.Errorf("backing up sshd_config: %w", err)
		}
	}
	if err := os.WriteFile(sshdConfigPath+".bak", data, 0600); err != nil {
		return fmt.Errorf("backing up sshd_config: %w", err)
	}

	updated := ApplyDirectives(string(data), HardeningDirectives)
	if err := os.WriteFile(sshdConfigPath, []byte(updated), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", sshdConfigPath, err)
	}

	// Debian ships the unit as ssh, some derivatives as sshd.
	if err := m.runner.Run(ctx, "systemctl", "restart", "ssh"); err != nil {
		if err2 := m.runner.Run(ctx, "systemctl", "restart", "sshd"); err2 != nil {
			return fmt.Errorf("restarting ssh daemon: %w", err)
		}
	}
	return nil
}
