package container

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/avocadotools/avx/internal/volume"
)

// Runner invokes a container tool with an argument vector and returns its
// combined output. Commands never pass through a host shell.
type Runner interface {
	Run(ctx context.Context, tool volume.Tool, args ...string) (string, error)
}

// ExecRunner runs the container tool as a subprocess.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, tool volume.Tool, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, string(tool), args...)
	out, err := cmd.CombinedOutput()
	trimmed := strings.TrimRight(string(out), "\n")
	if err != nil {
		return trimmed, fmt.Errorf("%s %s: %s: %w", tool, args[0], strings.TrimSpace(trimmed), err)
	}
	return trimmed, nil
}
