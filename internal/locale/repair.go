package locale

import (
	"context"
	"fmt"
	"sort"

	"github.com/stuffbucket/vpsup/internal/execx"
)

// Repairer performs the remedial actions a non-empty reconcile Result calls
// for: installing the locales package, generating the missing locales, and
// updating the system-wide defaults. Every action is attempted once; a
// failure propagates with no partial-success bookkeeping.
type Repairer struct {
	runner execx.Runner
}

// NewRepairer returns a Repairer executing through runner.
func NewRepairer(runner execx.Runner) *Repairer {
	return &Repairer{runner: runner}
}

// EnsurePackage installs the locales package when locale-gen is absent.
func (p *Repairer) EnsurePackage(ctx context.Context) error {
	if _, err := p.runner.LookPath("locale-gen"); err == nil {
		return nil
	}
	if err := p.runner.Run(ctx, "apt-get", "install", "-y", "locales"); err != nil {
		return fmt.Errorf("installing locales package: %w", err)
	}
	return nil
}

// Generate builds every missing locale in one locale-gen invocation.
func (p *Repairer) Generate(ctx context.Context, missing []Identifier) error {
	if len(missing) == 0 {
		return nil
	}
	args := make([]string, 0, len(missing))
	for _, id := range missing {
		args = append(args, string(id))
	}
	if err := p.runner.Run(ctx, "locale-gen", args...); err != nil {
		return fmt.Errorf("generating locales: %w", err)
	}
	return nil
}

// UpdateDefaults sets the system-wide locale defaults via update-locale.
// A nil or empty mapping is a no-op.
func (p *Repairer) UpdateDefaults(ctx context.Context, defaults map[string]string) error {
	if len(defaults) == 0 {
		return nil
	}
	keys := make([]string, 0, len(defaults))
	for key := range defaults {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys))
	for _, key := range keys {
		args = append(args, key+"="+defaults[key])
	}
	if err := p.runner.Run(ctx, "update-locale", args...); err != nil {
		return fmt.Errorf("updating locale defaults: %w", err)
	}
	return nil
}
