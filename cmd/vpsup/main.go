// Command vpsup bootstraps a fresh Debian-family VPS: locale repair, sudo
// user creation with SSH lockdown, Docker install, and git/GitHub setup.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/stuffbucket/vpsup/internal/logging"
	"github.com/stuffbucket/vpsup/internal/ui"
)

// Build information, set via ldflags:
//
//	-X main.version={{.Version}}
//	-X main.commit={{.Commit}}
//	-X main.date={{.Date}}
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	app := NewApp(BuildInfo{Version: version, Commit: commit, Date: date})
	defer func() { _ = logging.Close() }()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "locale":
		app.LocaleCmd(os.Args[2:])
	case "user":
		app.UserCmd(os.Args[2:])
	case "docker":
		app.DockerCmd(os.Args[2:])
	case "git":
		app.GitCmd(os.Args[2:])
	case "doctor":
		app.DoctorCmd(os.Args[2:])
	case "config":
		app.ConfigCmd(os.Args[2:])
	case "version", "-v", "--version":
		app.VersionCmd()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func (a *App) VersionCmd() {
	fmt.Printf("vpsup %s\n", a.Build.Version)
	if a.Build.Commit != "none" {
		fmt.Printf("  commit: %s\n", a.Build.Commit)
	}
	if a.Build.Date != "unknown" {
		fmt.Printf("  built:  %s\n", a.Build.Date)
	}
	fmt.Printf("  os:     %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Printf("  go:     %s\n", runtime.Version())
}

func printUsage() {
	logo := ui.Logo()
	if logo != "" {
		fmt.Print(logo)
	}
	fmt.Println(ui.Tagline())
	fmt.Println()

	fmt.Println(" " + ui.HelpSection("Usage:"))
	fmt.Println("   vpsup <command> [options]")
	fmt.Println()

	fmt.Println(" " + ui.HelpSection("Commands:"))
	fmt.Println(ui.HelpCommand("locale", "repair missing system locales"))
	fmt.Println(ui.HelpCommand("user", "create a sudo user and lock down SSH"))
	fmt.Println(ui.HelpCommand("docker", "install Docker Engine"))
	fmt.Println(ui.HelpCommand("git", "configure git identity and GitHub SSH access"))
	fmt.Println(ui.HelpCommand("doctor", "run host health checks"))
	fmt.Println(ui.HelpCommand("config", "show configuration and paths"))
	fmt.Println(ui.HelpCommand("version", "print version information"))
	fmt.Println()

	fmt.Println(" " + ui.HelpSection("Examples:"))
	fmt.Println(ui.HelpExample("vpsup doctor"))
	fmt.Println(ui.HelpExample("vpsup locale de_AT.UTF-8"))
	fmt.Println(ui.HelpExample("vpsup user deploy"))
	fmt.Println()
}
