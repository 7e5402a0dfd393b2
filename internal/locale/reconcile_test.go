package locale

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSystem is an in-memory System for reconciler tests.
type fakeSystem struct {
	environ  []string
	binaries map[string]bool
	outputs  map[string]string
	files    map[string]string
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{
		binaries: map[string]bool{"locale": true},
		outputs:  map[string]string{},
		files:    map[string]string{},
	}
}

func (f *fakeSystem) Environ() []string { return f.environ }

func (f *fakeSystem) LookPath(file string) (string, error) {
	if f.binaries[file] {
		return "/usr/bin/" + file, nil
	}
	return "", fmt.Errorf("%s: executable file not found in $PATH", file)
}

func (f *fakeSystem) Output(_ context.Context, name string, args ...string) (string, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	out, ok := f.outputs[key]
	if !ok {
		return "", fmt.Errorf("unexpected command %q", key)
	}
	return out, nil
}

func (f *fakeSystem) ReadFile(path string) ([]byte, error) {
	content, ok := f.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return []byte(content), nil
}

func (f *fakeSystem) setAvailable(ids ...string) {
	f.outputs["locale -a"] = strings.Join(ids, "\n") + "\n"
}

func newReconciler(sys *fakeSystem, paths ...string) *Reconciler {
	if _, ok := sys.outputs["locale"]; !ok {
		sys.outputs["locale"] = ""
	}
	return NewReconciler(sys, paths)
}

func TestReconcileFacilityMissing(t *testing.T) {
	sys := newFakeSystem()
	sys.binaries["locale"] = false

	_, err := newReconciler(sys).Reconcile(context.Background(), nil)
	require.ErrorIs(t, err, ErrFacilityMissing)
}

func TestReconcileNothingConfigured(t *testing.T) {
	sys := newFakeSystem()
	sys.setAvailable("C", "C.utf8", "POSIX")

	result, err := newReconciler(sys).Reconcile(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, result.Empty())
}

func TestReconcileOnlySpecialConfigured(t *testing.T) {
	sys := newFakeSystem()
	sys.environ = []string{"LANG=C", "LC_ALL=POSIX"}
	sys.setAvailable("C", "POSIX")

	result, err := newReconciler(sys).Reconcile(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, result.Empty())
}

func TestReconcileNothingMissing(t *testing.T) {
	sys := newFakeSystem()
	sys.environ = []string{"LANG=en_US.UTF-8"}
	sys.setAvailable("C", "en_US.utf8")

	result, err := newReconciler(sys).Reconcile(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, result.Empty())
	assert.Empty(t, result.DefaultsToUpdate)
}

func TestReconcileMissingFromEnvironment(t *testing.T) {
	sys := newFakeSystem()
	sys.environ = []string{"LANG=de_AT.UTF-8", "HOME=/home/u"}
	sys.setAvailable("C", "en_US.utf8")

	result, err := newReconciler(sys).Reconcile(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []Identifier{"de_at.utf8"}, result.Missing)

	// LANG keeps its original spelling; LC_ALL is unset so absent.
	assert.Equal(t, map[string]string{"LANG": "de_AT.UTF-8"}, result.DefaultsToUpdate)
	_, hasLCAll := result.DefaultsToUpdate["LC_ALL"]
	assert.False(t, hasLCAll)
}

func TestReconcileSpecialNeverPromoted(t *testing.T) {
	sys := newFakeSystem()
	sys.environ = []string{"LANG=C", "LC_ALL=de_AT.UTF-8"}
	sys.setAvailable("C")

	result, err := newReconciler(sys).Reconcile(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []Identifier{"de_at.utf8"}, result.Missing)
	assert.Equal(t, map[string]string{"LC_ALL": "de_AT.UTF-8"}, result.DefaultsToUpdate)
}

func TestReconcileExplicitArgument(t *testing.T) {
	sys := newFakeSystem()
	sys.setAvailable("C", "en_US.utf8")

	result, err := newReconciler(sys).Reconcile(context.Background(), []string{"fr_FR.UTF-8"})
	require.NoError(t, err)
	assert.Equal(t, []Identifier{"fr_fr.utf8"}, result.Missing)
	assert.Empty(t, result.DefaultsToUpdate)
}

func TestReconcileFromLocaleOutput(t *testing.T) {
	sys := newFakeSystem()
	sys.outputs["locale"] = "LANG=en_US.UTF-8\nLC_TIME=\"nl_NL.UTF-8\"\nLC_ALL=\n"
	sys.setAvailable("en_US.utf8")

	result, err := newReconciler(sys).Reconcile(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []Identifier{"nl_nl.utf8"}, result.Missing)
}

func TestReconcileFromProfileFiles(t *testing.T) {
	sys := newFakeSystem()
	sys.setAvailable("en_US.utf8")
	sys.files["/etc/default/locale"] = "LANG=en_US.UTF-8\n"
	sys.files["/home/u/.profile"] = "export LANG=sv_SE.UTF-8\n"

	r := newReconciler(sys, "/etc/default/locale", "/home/u/.profile", "/root/.profile")
	result, err := r.Reconcile(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []Identifier{"sv_se.utf8"}, result.Missing)
}

func TestReconcileIdempotentAfterRepair(t *testing.T) {
	sys := newFakeSystem()
	sys.environ = []string{"LANG=de_AT.UTF-8"}
	sys.setAvailable("en_US.utf8")

	r := newReconciler(sys)
	first, err := r.Reconcile(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, []Identifier{"de_at.utf8"}, first.Missing)

	// After generation the locale shows up in locale -a output.
	sys.setAvailable("en_US.utf8", "de_AT.utf8")
	second, err := r.Reconcile(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, second.Empty())
}

func TestDefaultProfilePaths(t *testing.T) {
	paths := DefaultProfilePaths("/home/u")
	assert.Contains(t, paths, "/etc/default/locale")
	assert.Contains(t, paths, "/home/u/.profile")
	assert.Contains(t, paths, "/root/.bashrc")

	noHome := DefaultProfilePaths("")
	for _, p := range noHome {
		assert.False(t, strings.HasPrefix(p, "/."), "bad path %q", p)
	}
}
