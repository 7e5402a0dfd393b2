package main

import (
	"context"
	"flag"
	"fmt"
	"os/exec"

	"github.com/stuffbucket/vpsup/internal/execx"
	"github.com/stuffbucket/vpsup/internal/sysuser"
	"github.com/stuffbucket/vpsup/internal/ui"
)

// UserCmd creates the administrative user and locks down the SSH daemon.
func (a *App) UserCmd(args []string) {
	fs := flag.NewFlagSet("user", flag.ExitOnError)
	shell := fs.String("shell", "", "Login shell (default: from settings, then /bin/bash)")
	noLockdown := fs.Bool("no-lockdown", false, "Skip sshd hardening")
	_ = fs.Parse(args)

	ctx := context.Background()

	// User creation writes under /home and /etc, so sudo decoration of
	// individual commands is not enough here.
	if !execx.IsRoot() {
		a.fatalf("vpsup user must run as root")
	}

	username := fs.Arg(0)
	if username == "" {
		username = a.Config.Settings.DefaultUser
	}
	if username == "" {
		username = ui.Input("Username for the new sudo user", "deploy", "")
	}
	if username == "" {
		a.fatalf("No username given (pass one as an argument or set default_user in settings)")
	}
	if err := sysuser.ValidateUsername(username); err != nil {
		a.fatalf("Error: %v", err)
	}

	if *shell == "" {
		*shell = a.Config.Settings.DefaultShell
	}

	runner := a.Runner()
	mgr := sysuser.NewManager(runner)

	keys := sysuser.RootAuthorizedKeys()

	if mgr.Exists(ctx, username) {
		ui.Warnf("User %s already exists, skipping creation", username)
	} else {
		password, err := promptPassword(username)
		if err != nil {
			a.fatalf("Error: %v", err)
		}

		if len(keys) == 0 && ui.IsInteractive() {
			if key := ui.Input("Paste an SSH public key for "+username, "ssh-ed25519 ...", ""); key != "" {
				keys = append(keys, key)
			}
		}

		var groups []string
		if _, err := exec.LookPath("docker"); err == nil {
			groups = append(groups, "docker")
		}

		err = mgr.Create(ctx, sysuser.Options{
			Username:       username,
			Shell:          *shell,
			Password:       password,
			Groups:         groups,
			AuthorizedKeys: keys,
		})
		if err != nil {
			a.fatalf("Error creating user: %v", err)
		}
		ui.Successf("Created sudo user %s", ui.Name(username))
		if len(keys) > 0 {
			ui.Successf("Installed %d SSH key(s) for %s", len(keys), username)
		}
	}

	if *noLockdown {
		return
	}

	// Refuse to disable password auth when the user has no key: that
	// would lock everyone out of the box.
	if len(keys) == 0 {
		ui.Warn("No SSH keys installed; skipping sshd lockdown to avoid locking you out.")
		ui.Muted("Re-run 'vpsup user' after installing a key, or use --no-lockdown to silence this.")
		return
	}

	prompt := fmt.Sprintf("Disable root login and password authentication for SSH? Only key-based logins (e.g. %s) will work afterwards.", username)
	if !ui.Confirm("Lock down sshd?", prompt, true) {
		ui.Muted("Skipping sshd lockdown.")
		return
	}

	if err := mgr.LockdownSSH(ctx, a.Config.Dirs.Backups); err != nil {
		a.fatalf("Error hardening sshd: %v", err)
	}
	ui.Success("sshd hardened: root login and password authentication disabled")
	ui.Mutedf("Original config backed up to %s", a.Config.Dirs.Backups)
}

// promptPassword reads and confirms the new user's password.
func promptPassword(username string) (string, error) {
	if !ui.IsInteractive() {
		// Non-interactive runs create the user without a password;
		// key-based SSH still works and sudo can be configured later.
		ui.Warn("stdin is not a terminal; creating user without a password")
		return "", nil
	}
	for {
		password, err := ui.Password(fmt.Sprintf("Password for %s: ", username))
		if err != nil {
			return "", err
		}
		if len(password) < 8 {
			ui.Warn("Password must be at least 8 characters")
			continue
		}
		confirm, err := ui.Password("Confirm password: ")
		if err != nil {
			return "", err
		}
		if password != confirm {
			ui.Warn("Passwords do not match, try again")
			continue
		}
		return password, nil
	}
}
