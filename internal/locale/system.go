package locale

import (
	"context"
	"os"
	"os/exec"

	"github.com/stuffbucket/vpsup/internal/logging"
)

// System is the narrow view of the host the reconciler needs. Keeping it
// small makes the reconciler a pure function of its inputs and lets tests run
// without a real Linux host.
type System interface {
	// Environ returns the process environment as KEY=value strings.
	Environ() []string
	// LookPath resolves a binary on PATH.
	LookPath(file string) (string, error)
	// Output runs a command and returns its combined stdout.
	Output(ctx context.Context, name string, args ...string) (string, error)
	// ReadFile reads a file, returning an error if it does not exist.
	ReadFile(path string) ([]byte, error)
}

// HostSystem implements System against the real host.
type HostSystem struct{}

func (HostSystem) Environ() []string {
	return os.Environ()
}

func (HostSystem) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (HostSystem) Output(ctx context.Context, name string, args ...string) (string, error) {
	log := logging.Get()
	log.Cmd(name, args)
	out, err := exec.CommandContext(ctx, name, args...).Output()
	log.CmdOutput(name, out, err)
	return string(out), err
}

func (HostSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
