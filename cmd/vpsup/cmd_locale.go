package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"strings"

	"github.com/stuffbucket/vpsup/internal/execx"
	"github.com/stuffbucket/vpsup/internal/locale"
	"github.com/stuffbucket/vpsup/internal/ui"
)

// LocaleCmd repairs configured-but-unavailable system locales. Trailing
// arguments are extra locale identifiers to check.
func (a *App) LocaleCmd(args []string) {
	fs := flag.NewFlagSet("locale", flag.ExitOnError)
	check := fs.Bool("check", false, "Only report missing locales, do not repair")
	_ = fs.Parse(args) // ExitOnError mode handles errors

	ctx := context.Background()

	explicit := append([]string{}, a.Config.Settings.ExtraLocales...)
	explicit = append(explicit, fs.Args()...)

	home, _ := os.UserHomeDir()
	rec := locale.NewReconciler(locale.HostSystem{}, locale.DefaultProfilePaths(home))

	result, err := rec.Reconcile(ctx, explicit)
	if errors.Is(err, locale.ErrFacilityMissing) {
		a.fatalf("Cannot inspect locales: %v", err)
	}
	if err != nil {
		a.fatalf("Locale reconciliation failed: %v", err)
	}

	if result.Configured == 0 {
		ui.Success("No locales configured beyond C/POSIX — nothing to do.")
		return
	}
	if result.Empty() {
		ui.Successf("All %d configured locale(s) are available.", result.Configured)
		return
	}

	ui.Printf("Missing locales: %s\n", ui.Name(joinIdentifiers(result.Missing)))
	for key, value := range result.DefaultsToUpdate {
		ui.Mutedf("Will set system default %s=%s", key, value)
	}

	if *check {
		ui.Warnf("%d locale(s) missing (check mode, not repairing)", len(result.Missing))
		os.Exit(1)
	}

	// Privilege is only needed once we know something must be generated.
	if err := execx.EnsurePrivilege(ctx); err != nil {
		a.fatalf("Cannot repair locales: %v", err)
	}

	runner := a.Runner()
	repairer := locale.NewRepairer(runner)

	if err := repairer.EnsurePackage(ctx); err != nil {
		a.fatalf("Error: %v", err)
	}
	if err := repairer.Generate(ctx, result.Missing); err != nil {
		a.fatalf("Error: %v", err)
	}
	if err := repairer.UpdateDefaults(ctx, result.DefaultsToUpdate); err != nil {
		a.fatalf("Error: %v", err)
	}

	ui.Successf("Generated %d locale(s).", len(result.Missing))
	ui.Muted("Log out and back in for the new defaults to take effect.")
}

func joinIdentifiers(ids []locale.Identifier) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, " ")
}
