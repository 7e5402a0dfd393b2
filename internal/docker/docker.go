// Package docker installs Docker Engine from the official apt repository.
package docker

import (
	"context"
	"fmt"

	"github.com/stuffbucket/vpsup/internal/execx"
	"github.com/stuffbucket/vpsup/internal/platform"
)

const (
	keyringPath = "/etc/apt/keyrings/docker.asc"
	sourcesPath = "/etc/apt/sources.list.d/docker.list"
)

// enginePackages are the packages that make up a full Docker install.
var enginePackages = []string{
	"docker-ce",
	"docker-ce-cli",
	"containerd.io",
	"docker-buildx-plugin",
	"docker-compose-plugin",
}

// Installer sets up Docker Engine on a Debian-family host.
type Installer struct {
	runner  execx.Runner
	release platform.OSRelease
}

// NewInstaller returns an Installer for the given host release.
func NewInstaller(runner execx.Runner, release platform.OSRelease) *Installer {
	return &Installer{runner: runner, release: release}
}

// Installed reports whether the docker CLI is already on PATH.
func (i *Installer) Installed() bool {
	_, err := i.runner.LookPath("docker")
	return err == nil
}

// repoBase picks the upstream repository matching the distribution. Docker
// publishes debian and ubuntu trees; derivatives use the debian one.
func (i *Installer) repoBase() string {
	if i.release.ID == "ubuntu" {
		return "https://download.docker.com/linux/ubuntu"
	}
	return "https://download.docker.com/linux/debian"
}

// RepoLine returns the apt sources entry for the Docker repository.
func (i *Installer) RepoLine() string {
	return fmt.Sprintf("deb [arch=%s signed-by=%s] %s %s stable",
		platform.HostArch(), keyringPath, i.repoBase(), i.release.Codename)
}

// Install performs the full setup: keyring, apt source, engine packages, and
// enabling the service. Each step is attempted once; a failure aborts.
func (i *Installer) Install(ctx context.Context) error {
	steps := []struct {
		desc string
		run  func() error
	}{
		{"creating keyring directory", func() error {
			return i.runner.Run(ctx, "install", "-m", "0755", "-d", "/etc/apt/keyrings")
		}},
		{"downloading repository key", func() error {
			return i.runner.Run(ctx, "curl", "-fsSL", i.repoBase()+"/gpg", "-o", keyringPath)
		}},
		{"setting keyring permissions", func() error {
			return i.runner.Run(ctx, "chmod", "a+r", keyringPath)
		}},
		{"writing apt source", func() error {
			return i.runner.RunInput(ctx, i.RepoLine()+"\n", "tee", sourcesPath)
		}},
		{"updating package index", func() error {
			return i.runner.Run(ctx, "apt-get", "update", "-y")
		}},
		{"installing engine packages", func() error {
			args := append([]string{"install", "-y"}, enginePackages...)
			return i.runner.Run(ctx, "apt-get", args...)
		}},
		{"enabling docker service", func() error {
			return i.runner.Run(ctx, "systemctl", "enable", "--now", "docker")
		}},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			return fmt.Errorf("%s: %w", step.desc, err)
		}
	}
	return nil
}

// AddUserToGroup puts user in the docker group so it can use the socket
// without sudo.
func (i *Installer) AddUserToGroup(ctx context.Context, user string) error {
	if err := i.runner.Run(ctx, "usermod", "-aG", "docker", user); err != nil {
		return fmt.Errorf("adding %s to docker group: %w", user, err)
	}
	return nil
}
