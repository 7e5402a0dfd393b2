package locale

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrFacilityMissing means the host has no locale(1) command, so the state of
// the locale database cannot be determined. This aborts reconciliation before
// anything privileged happens.
var ErrFacilityMissing = errors.New("locale command not found on this system")

// DefaultProfilePaths are the static files scanned for locale assignments:
// the system-wide defaults and environment files plus the shell profiles of
// the invoking user and root.
func DefaultProfilePaths(home string) []string {
	paths := []string{
		"/etc/default/locale",
		"/etc/locale.conf",
		"/etc/environment",
	}
	if home != "" {
		paths = append(paths, home+"/.profile", home+"/.bashrc")
	}
	paths = append(paths, "/root/.profile", "/root/.bashrc")
	return paths
}

// Result is the outcome of a reconciliation pass.
type Result struct {
	// Configured is the number of configured non-special locales. Zero
	// means there was nothing to check.
	Configured int
	// Missing holds the configured-but-unavailable locales in canonical
	// form. Empty means nothing needs repair.
	Missing []Identifier
	// DefaultsToUpdate maps LANG and/or LC_ALL to the values the system
	// defaults should be set to, in their original (non-canonical)
	// spelling. Only populated when Missing is non-empty.
	DefaultsToUpdate map[string]string
}

// Empty reports whether the result requires no action.
func (r Result) Empty() bool {
	return len(r.Missing) == 0
}

// Reconciler computes which configured locales are absent from the system.
// Both sets are rebuilt from scratch on every call; nothing is persisted.
type Reconciler struct {
	sys System

	// ProfilePaths are the static files scanned for locale assignments.
	// Missing files are skipped silently.
	ProfilePaths []string
}

// NewReconciler returns a Reconciler reading from the given system.
func NewReconciler(sys System, profilePaths []string) *Reconciler {
	return &Reconciler{sys: sys, ProfilePaths: profilePaths}
}

// CollectAvailable lists the locales the system locale database supports.
// It fails with ErrFacilityMissing when locale(1) is not installed.
func (r *Reconciler) CollectAvailable(ctx context.Context) (*Set, error) {
	if _, err := r.sys.LookPath("locale"); err != nil {
		return nil, ErrFacilityMissing
	}
	out, err := r.sys.Output(ctx, "locale", "-a")
	if err != nil {
		return nil, fmt.Errorf("listing available locales: %w", err)
	}
	available := NewSet()
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		available.Add(line)
	}
	return available, nil
}

// CollectConfigured gathers every locale identifier configured on the host:
// the process environment, the locale command's reported settings, the static
// profile files, and any explicitly requested identifiers.
func (r *Reconciler) CollectConfigured(ctx context.Context, explicit []string) *Set {
	configured := NewSet()

	for _, value := range r.envValues() {
		configured.Add(value)
	}

	// locale(1) reports the effective settings, which can differ from the
	// raw environment when values fall back to defaults.
	if out, err := r.sys.Output(ctx, "locale"); err == nil {
		for _, value := range ParseLocaleOutput(out) {
			configured.Add(value)
		}
	}

	for _, path := range r.ProfilePaths {
		data, err := r.sys.ReadFile(path)
		if err != nil {
			continue
		}
		for _, value := range ParseProfile(string(data)) {
			configured.Add(value)
		}
	}

	for _, id := range explicit {
		configured.Add(id)
	}

	return configured
}

// Reconcile computes the missing set and the defaults that should be updated
// after repair. Both no-op outcomes (nothing configured, nothing missing)
// return an empty Result with a nil error.
func (r *Reconciler) Reconcile(ctx context.Context, explicit []string) (Result, error) {
	available, err := r.CollectAvailable(ctx)
	if err != nil {
		return Result{}, err
	}

	configured := r.CollectConfigured(ctx, explicit)
	checked := len(configured.WithoutSpecial())
	if checked == 0 {
		return Result{}, nil
	}

	missing := Diff(configured, available)
	if len(missing) == 0 {
		return Result{Configured: checked}, nil
	}

	return Result{
		Configured:       checked,
		Missing:          missing,
		DefaultsToUpdate: r.defaultsToUpdate(),
	}, nil
}

// defaultsToUpdate picks the LANG and LC_ALL values the system-wide defaults
// should be set to. Only these two are treated as defaults; other LC_*
// variables are repaired but never promoted.
func (r *Reconciler) defaultsToUpdate() map[string]string {
	env := environMap(r.sys.Environ())
	defaults := make(map[string]string)
	for _, key := range []string{"LANG", "LC_ALL"} {
		value := env[key]
		if value == "" || IsSpecial(Canonicalize(value)) {
			continue
		}
		defaults[key] = value
	}
	return defaults
}

// envValues returns the locale-related values from the process environment.
func (r *Reconciler) envValues() []string {
	var values []string
	for key, value := range environMap(r.sys.Environ()) {
		if isLocaleKey(key) && value != "" {
			values = append(values, value)
		}
	}
	return values
}

func environMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if key, value, ok := strings.Cut(kv, "="); ok {
			env[key] = value
		}
	}
	return env
}
