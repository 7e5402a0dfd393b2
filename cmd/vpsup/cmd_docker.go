package main

import (
	"context"
	"flag"

	"github.com/stuffbucket/vpsup/internal/docker"
	"github.com/stuffbucket/vpsup/internal/execx"
	"github.com/stuffbucket/vpsup/internal/platform"
	"github.com/stuffbucket/vpsup/internal/sysuser"
	"github.com/stuffbucket/vpsup/internal/ui"
)

// DockerCmd installs Docker Engine from the official apt repository.
func (a *App) DockerCmd(args []string) {
	fs := flag.NewFlagSet("docker", flag.ExitOnError)
	user := fs.String("user", "", "User to add to the docker group (default: default_user from settings)")
	_ = fs.Parse(args)

	ctx := context.Background()

	release, err := platform.ReadOSRelease()
	if err != nil {
		a.fatalf("Cannot determine distribution: %v", err)
	}
	if !release.IsDebianFamily() {
		a.fatalf("%s is not a Debian-family distribution; only apt-based installs are supported", release)
	}

	runner := a.Runner()
	installer := docker.NewInstaller(runner, release)

	if installer.Installed() {
		ui.Success("Docker is already installed.")
	} else {
		if err := execx.EnsurePrivilege(ctx); err != nil {
			a.fatalf("Cannot install Docker: %v", err)
		}
		ui.Infof("Installing Docker Engine for %s", release)
		if err := installer.Install(ctx); err != nil {
			a.fatalf("Error installing Docker: %v", err)
		}
		ui.Success("Docker Engine installed and enabled.")
	}

	target := *user
	if target == "" {
		target = a.Config.Settings.DefaultUser
	}
	if target == "" {
		return
	}
	if err := sysuser.ValidateUsername(target); err != nil {
		a.fatalf("Error: %v", err)
	}
	if !sysuser.NewManager(runner).Exists(ctx, target) {
		ui.Warnf("User %s does not exist; not adding to docker group", target)
		return
	}
	if err := installer.AddUserToGroup(ctx, target); err != nil {
		a.fatalf("Error: %v", err)
	}
	ui.Successf("Added %s to the docker group (takes effect at next login)", ui.Name(target))
}
