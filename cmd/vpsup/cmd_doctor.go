package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/stuffbucket/vpsup/internal/doctor"
	"github.com/stuffbucket/vpsup/internal/ui"
)

// DoctorCmd runs host health checks and prints a report.
func (a *App) DoctorCmd(args []string) {
	fs := flag.NewFlagSet("doctor", flag.ExitOnError)
	_ = fs.Parse(args)

	fmt.Println()
	ui.Print(ui.Bold("vpsup doctor"))
	fmt.Println()

	report := doctor.Run(context.Background(), a.Config)

	maxNameLen := 0
	for _, r := range report.Results {
		if len(r.Name) > maxNameLen {
			maxNameLen = len(r.Name)
		}
	}

	for _, r := range report.Results {
		name := r.Name
		for len(name) < maxNameLen {
			name += " "
		}

		switch r.Status {
		case doctor.StatusPass:
			fmt.Printf("  %s  %s  %s\n", ui.SuccessText("✓"), name, ui.MutedText(r.Message))
		case doctor.StatusWarn:
			fmt.Printf("  %s  %s  %s\n", ui.WarningText("!"), name, r.Message)
		case doctor.StatusFail:
			fmt.Printf("  %s  %s  %s\n", ui.ErrorText("✗"), name, ui.ErrorText(r.Message))
		default:
			fmt.Printf("  %s  %s  %s\n", ui.MutedText("-"), ui.MutedText(name), ui.MutedText(r.Message))
		}

		if r.Status != doctor.StatusPass && r.Fix != "" {
			fmt.Printf("      %s %s\n", ui.MutedText("fix:"), ui.WarningText(r.Fix))
		}
	}

	pass, warn, fail := report.Summary()
	fmt.Println()
	if fail == 0 && warn == 0 {
		ui.Success("All checks passed!")
	} else if fail == 0 {
		ui.Printf("%d passed, %d warnings\n", pass, warn)
	} else {
		ui.Printf("%d passed, %d warnings, %s\n", pass, warn, ui.ErrorText(fmt.Sprintf("%d failed", fail)))
		fmt.Println()
		ui.Muted("Run suggested fix commands to resolve issues.")
	}
	fmt.Println()

	if report.HasFailures() {
		os.Exit(1)
	}
}
