package execx

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandQuoting(t *testing.T) {
	h := NewHost(false)

	assert.Equal(t, "echo foo", h.Command("echo", "foo"))
	assert.Equal(t, "echo 'foo bar'", h.Command("echo", "foo bar"))
	assert.Equal(t, "locale-gen de_AT.UTF-8", h.Command("locale-gen", "de_AT.UTF-8"))
}

func TestCommandElevation(t *testing.T) {
	h := NewHost(true)
	cmd := h.Command("apt-get", "update")

	if IsRoot() {
		assert.Equal(t, "apt-get update", cmd)
	} else {
		assert.Equal(t, "sudo -n apt-get update", cmd)
	}
}

func TestRun(t *testing.T) {
	h := NewHost(false)
	ctx := context.Background()

	require.NoError(t, h.Run(ctx, "true"))

	err := h.Run(ctx, "false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "false")
}

func TestOutput(t *testing.T) {
	h := NewHost(false)

	out, err := h.Output(context.Background(), "echo", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", strings.TrimSpace(out))
}

func TestRunInput(t *testing.T) {
	h := NewHost(false)

	// cat consumes stdin; success means the pipe was wired up.
	require.NoError(t, h.RunInput(context.Background(), "some input\n", "cat"))
}

func TestLookPath(t *testing.T) {
	h := NewHost(false)

	path, err := h.LookPath("sh")
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	_, err = h.LookPath("definitely-not-a-binary-vpsup")
	assert.Error(t, err)
}
