package sysuser

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// fakeRunner records executed commands and serves canned lookups.
type fakeRunner struct {
	commands []string
	inputs   map[string]string
	groups   map[string]bool
	users    map[string]bool
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		inputs: map[string]string{},
		groups: map[string]bool{"sudo": true},
		users:  map[string]bool{},
	}
}

func (f *fakeRunner) LookPath(file string) (string, error) {
	return "/usr/sbin/" + file, nil
}

func (f *fakeRunner) record(name string, args []string) string {
	cmd := strings.Join(append([]string{name}, args...), " ")
	f.commands = append(f.commands, cmd)
	return cmd
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	f.record(name, args)
	return nil
}

func (f *fakeRunner) RunInput(_ context.Context, input, name string, args ...string) error {
	cmd := f.record(name, args)
	f.inputs[cmd] = input
	return nil
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) (string, error) {
	f.record(name, args)
	if name == "getent" && len(args) == 2 {
		if f.groups[args[1]] {
			return args[1] + ":x:27:", nil
		}
		return "", fmt.Errorf("group %s not found", args[1])
	}
	if name == "id" && len(args) == 2 {
		if f.users[args[1]] {
			return "1000", nil
		}
		return "", fmt.Errorf("no such user")
	}
	return "", nil
}

func TestCreateSequencesCommands(t *testing.T) {
	runner := newFakeRunner()
	runner.groups["docker"] = true
	m := NewManager(runner)

	err := m.Create(context.Background(), Options{
		Username: "deploy",
		Shell:    "/bin/bash",
		Password: "hunter22",
		Groups:   []string{"docker"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	want := []string{
		"useradd -m -s /bin/bash deploy",
		"getent group sudo",
		"usermod -aG sudo deploy",
		"getent group docker",
		"usermod -aG docker deploy",
		"chpasswd",
	}
	if len(runner.commands) != len(want) {
		t.Fatalf("got commands %v, want %v", runner.commands, want)
	}
	for i, cmd := range want {
		if runner.commands[i] != cmd {
			t.Errorf("command[%d] = %q, want %q", i, runner.commands[i], cmd)
		}
	}
	if runner.inputs["chpasswd"] != "deploy:hunter22\n" {
		t.Errorf("chpasswd input = %q", runner.inputs["chpasswd"])
	}
}

func TestCreateSkipsMissingGroups(t *testing.T) {
	runner := newFakeRunner()
	m := NewManager(runner)

	err := m.Create(context.Background(), Options{Username: "deploy", Groups: []string{"docker"}})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	for _, cmd := range runner.commands {
		if cmd == "usermod -aG docker deploy" {
			t.Error("should not add user to a group that does not exist")
		}
	}
}

func TestCreateRejectsBadUsername(t *testing.T) {
	runner := newFakeRunner()
	m := NewManager(runner)

	if err := m.Create(context.Background(), Options{Username: "../root"}); err == nil {
		t.Fatal("expected error for invalid username")
	}
	if len(runner.commands) != 0 {
		t.Errorf("no commands should run for invalid username, got %v", runner.commands)
	}
}

func TestExists(t *testing.T) {
	runner := newFakeRunner()
	runner.users["deploy"] = true
	m := NewManager(runner)

	if !m.Exists(context.Background(), "deploy") {
		t.Error("deploy should exist")
	}
	if m.Exists(context.Background(), "nobody-else") {
		t.Error("nobody-else should not exist")
	}
}
