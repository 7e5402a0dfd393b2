package gitsetup

import (
	"fmt"
	"os"
	"strings"

	ssh_config "github.com/kevinburke/ssh_config"
)

// HasGitHubHost reports whether the ssh config content already declares a
// Host block matching github.com.
func HasGitHubHost(content string) bool {
	cfg, err := ssh_config.Decode(strings.NewReader(content))
	if err != nil {
		return false
	}
	for _, host := range cfg.Hosts {
		for _, pattern := range host.Patterns {
			if pattern.String() == "github.com" {
				return true
			}
		}
	}
	return false
}

// githubHostBlock returns the config entry pointing github.com at the key.
func githubHostBlock(identityFile string) string {
	return fmt.Sprintf(`Host github.com
    HostName github.com
    User git
    IdentityFile %s
    IdentitiesOnly yes
`, identityFile)
}

// EnsureGitHubHost appends a github.com Host block to ~/.ssh/config unless
// one is already present. Returns true when the block was added.
func EnsureGitHubHost(home string) (bool, error) {
	paths := GetPaths(home)

	var existing string
	if data, err := os.ReadFile(paths.ConfigFile); err == nil {
		existing = string(data)
	}
	if HasGitHubHost(existing) {
		return false, nil
	}

	if err := os.MkdirAll(paths.SSHDir, 0700); err != nil {
		return false, fmt.Errorf("failed to create ssh directory: %w", err)
	}

	block := githubHostBlock(paths.PrivateKey)
	var updated string
	if strings.TrimSpace(existing) != "" {
		updated = strings.TrimRight(existing, "\n") + "\n\n" + block
	} else {
		updated = block
	}

	if err := os.WriteFile(paths.ConfigFile, []byte(updated), 0600); err != nil {
		return false, fmt.Errorf("failed to write ssh config: %w", err)
	}
	return true, nil
}
