package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/stuffbucket/vpsup/internal/config"
	"github.com/stuffbucket/vpsup/internal/ui"
)

// ConfigCmd shows the current configuration, optionally initializing it.
func (a *App) ConfigCmd(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	initialize := fs.Bool("init", false, "Create directories and write a default settings file")
	_ = fs.Parse(args)

	dirs := a.Config.Dirs

	if *initialize {
		if err := config.EnsureDirectories(); err != nil {
			a.fatalf("Error creating directories: %v", err)
		}
		if _, err := os.Stat(dirs.SettingsFile); os.IsNotExist(err) {
			if err := a.Config.Save(); err != nil {
				a.fatalf("Error writing settings: %v", err)
			}
			ui.Successf("Wrote default settings to %s", ui.Path(dirs.SettingsFile))
		} else {
			ui.Mutedf("Settings file already exists: %s", dirs.SettingsFile)
		}
	}

	fmt.Println()
	ui.Print(ui.Bold("Paths"))
	ui.Printf("  config:    %s\n", ui.Path(dirs.Config))
	ui.Printf("  data:      %s\n", ui.Path(dirs.Data))
	ui.Printf("  backups:   %s\n", ui.Path(dirs.Backups))
	ui.Printf("  logs:      %s\n", ui.Path(dirs.Logs))
	ui.Printf("  settings:  %s\n", ui.Path(dirs.SettingsFile))
	fmt.Println()

	ui.Print(ui.Bold("Settings"))
	data, err := json.MarshalIndent(a.Config.Settings, "  ", "  ")
	if err != nil {
		a.fatalf("Error: %v", err)
	}
	fmt.Printf("  %s\n", data)
	fmt.Println()
}
