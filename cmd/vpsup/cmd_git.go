package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"

	"github.com/stuffbucket/vpsup/internal/execx"
	"github.com/stuffbucket/vpsup/internal/gitsetup"
	"github.com/stuffbucket/vpsup/internal/ui"
)

// GitCmd configures git identity and SSH access to GitHub for the invoking
// user. Runs unprivileged; everything lands in the caller's home directory.
func (a *App) GitCmd(args []string) {
	fs := flag.NewFlagSet("git", flag.ExitOnError)
	name := fs.String("name", "", "git user.name (default: from settings, then prompt)")
	email := fs.String("email", "", "git user.email (default: from settings, then prompt)")
	_ = fs.Parse(args)

	ctx := context.Background()

	if _, err := exec.LookPath("git"); err != nil {
		a.fatalf("git is not installed (apt-get install -y git)")
	}

	if *name == "" {
		*name = a.Config.Settings.GitName
	}
	if *email == "" {
		*email = a.Config.Settings.GitEmail
	}
	if *name == "" {
		*name = ui.Input("git user.name", "Jane Doe", "")
	}
	if *email == "" {
		*email = ui.Input("git user.email", "jane@example.com", "")
	}

	// git config writes to the invoking user's ~/.gitconfig, so no sudo.
	runner := execx.NewHost(false)
	if err := gitsetup.ConfigureIdentity(ctx, runner, *name, *email); err != nil {
		a.fatalf("Error: %v", err)
	}
	if *name != "" || *email != "" {
		ui.Successf("git identity configured (%s <%s>)", *name, *email)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		a.fatalf("Cannot determine home directory: %v", err)
	}

	hostname, _ := os.Hostname()
	comment := fmt.Sprintf("%s@%s", os.Getenv("USER"), hostname)
	pubKey, created, err := gitsetup.EnsureKey(home, comment)
	if err != nil {
		a.fatalf("Error generating SSH key: %v", err)
	}
	if created {
		ui.Successf("Generated SSH key at %s", ui.Path(gitsetup.GetPaths(home).PrivateKey))
	} else {
		ui.Mutedf("Using existing SSH key at %s", gitsetup.GetPaths(home).PrivateKey)
	}

	added, err := gitsetup.EnsureGitHubHost(home)
	if err != nil {
		a.fatalf("Error updating ssh config: %v", err)
	}
	if added {
		ui.Successf("Added github.com entry to %s", ui.Path(gitsetup.GetPaths(home).ConfigFile))
	}

	fmt.Println()
	ui.Print(ui.Bold("Add this public key to GitHub (Settings → SSH and GPG keys):"))
	fmt.Println()
	fmt.Print(pubKey)
	fmt.Println()
	ui.Muted("Then verify with: ssh -T git@github.com")
}
