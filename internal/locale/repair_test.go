package locale

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records executed commands.
type fakeRunner struct {
	commands []string
	binaries map[string]bool
}

func (f *fakeRunner) LookPath(file string) (string, error) {
	if f.binaries[file] {
		return "/usr/sbin/" + file, nil
	}
	return "", fmt.Errorf("%s not found", file)
}

func (f *fakeRunner) record(name string, args []string) {
	f.commands = append(f.commands, strings.Join(append([]string{name}, args...), " "))
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	f.record(name, args)
	return nil
}

func (f *fakeRunner) RunInput(_ context.Context, _ string, name string, args ...string) error {
	f.record(name, args)
	return nil
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) (string, error) {
	f.record(name, args)
	return "", nil
}

func TestRepairerGenerateBatchesOneCall(t *testing.T) {
	runner := &fakeRunner{}
	p := NewRepairer(runner)

	err := p.Generate(context.Background(), []Identifier{"de_at.utf8", "fr_fr.utf8"})
	require.NoError(t, err)
	require.Len(t, runner.commands, 1)
	assert.Equal(t, "locale-gen de_at.utf8 fr_fr.utf8", runner.commands[0])
}

func TestRepairerGenerateEmptyIsNoop(t *testing.T) {
	runner := &fakeRunner{}
	require.NoError(t, NewRepairer(runner).Generate(context.Background(), nil))
	assert.Empty(t, runner.commands)
}

func TestRepairerEnsurePackage(t *testing.T) {
	t.Run("already installed", func(t *testing.T) {
		runner := &fakeRunner{binaries: map[string]bool{"locale-gen": true}}
		require.NoError(t, NewRepairer(runner).EnsurePackage(context.Background()))
		assert.Empty(t, runner.commands)
	})

	t.Run("installs when missing", func(t *testing.T) {
		runner := &fakeRunner{binaries: map[string]bool{}}
		require.NoError(t, NewRepairer(runner).EnsurePackage(context.Background()))
		require.Len(t, runner.commands, 1)
		assert.Equal(t, "apt-get install -y locales", runner.commands[0])
	})
}

func TestRepairerUpdateDefaults(t *testing.T) {
	runner := &fakeRunner{}
	p := NewRepairer(runner)

	err := p.UpdateDefaults(context.Background(), map[string]string{
		"LC_ALL": "de_AT.UTF-8",
		"LANG":   "de_AT.UTF-8",
	})
	require.NoError(t, err)
	require.Len(t, runner.commands, 1)
	// Keys are sorted for a stable command line.
	assert.Equal(t, "update-locale LANG=de_AT.UTF-8 LC_ALL=de_AT.UTF-8", runner.commands[0])
}

func TestRepairerUpdateDefaultsEmptyIsNoop(t *testing.T) {
	runner := &fakeRunner{}
	require.NoError(t, NewRepairer(runner).UpdateDefaults(context.Background(), nil))
	assert.Empty(t, runner.commands)
}
