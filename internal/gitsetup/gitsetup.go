// Package gitsetup configures git identity and SSH access to GitHub.
package gitsetup

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stuffbucket/vpsup/internal/execx"
	"golang.org/x/crypto/ssh"
)

// KeyName is the default key file name.
const KeyName = "id_ed25519"

// Paths holds the SSH file locations for a home directory.
type Paths struct {
	SSHDir     string // ~/.ssh
	PrivateKey string // ~/.ssh/id_ed25519
	PublicKey  string // ~/.ssh/id_ed25519.pub
	ConfigFile string // ~/.ssh/config
}

// GetPaths returns the SSH paths under home.
func GetPaths(home string) Paths {
	sshDir := filepath.Join(home, ".ssh")
	return Paths{
		SSHDir:     sshDir,
		PrivateKey: filepath.Join(sshDir, KeyName),
		PublicKey:  filepath.Join(sshDir, KeyName+".pub"),
		ConfigFile: filepath.Join(sshDir, "config"),
	}
}

// EnsureKey creates an ed25519 keypair under home unless one exists, and
// returns the public key in authorized_keys format.
func EnsureKey(home, comment string) (pubKey string, created bool, err error) {
	paths := GetPaths(home)

	if err := os.MkdirAll(paths.SSHDir, 0700); err != nil {
		return "", false, fmt.Errorf("failed to create ssh directory: %w", err)
	}

	if _, err := os.Stat(paths.PrivateKey); err == nil {
		data, err := os.ReadFile(paths.PublicKey)
		if err != nil {
			return "", false, fmt.Errorf("failed to read public key: %w", err)
		}
		return string(data), false, nil
	}

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return "", false, fmt.Errorf("failed to generate key: %w", err)
	}

	sshPub, err := ssh.NewPublicKey(pub)
	if err != nil {
		return "", false, fmt.Errorf("failed to create ssh public key: %w", err)
	}

	privPEM, err := ssh.MarshalPrivateKey(priv, comment)
	if err != nil {
		return "", false, fmt.Errorf("failed to marshal private key: %w", err)
	}

	if err := os.WriteFile(paths.PrivateKey, pem.EncodeToMemory(privPEM), 0600); err != nil {
		return "", false, fmt.Errorf("failed to write private key: %w", err)
	}

	pubStr := string(ssh.MarshalAuthorizedKey(sshPub))
	if comment != "" {
		pubStr = strings.TrimRight(pubStr, "\n") + " " + comment + "\n"
	}
	if err := os.WriteFile(paths.PublicKey, []byte(pubStr), 0644); err != nil {
		return "", false, fmt.Errorf("failed to write public key: %w", err)
	}

	return pubStr, true, nil
}

// ConfigureIdentity sets the global git user.name and user.email.
func ConfigureIdentity(ctx context.Context, runner execx.Runner, name, email string) error {
	if name != "" {
		if err := runner.Run(ctx, "git", "config", "--global", "user.name", name); err != nil {
			return fmt.Errorf("setting git user.name: %w", err)
		}
	}
	if email != "" {
		if err := runner.Run(ctx, "git", "config", "--global", "user.email", email); err != nil {
			return fmt.Errorf("setting git user.email: %w", err)
		}
	}
	return nil
}
