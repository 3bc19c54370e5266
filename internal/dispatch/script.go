package dispatch

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/jorge-barreto/guidebook/internal/config"
	"github.com/jorge-barreto/guidebook/internal/state"
)

// Stdout and Stderr receive hook output alongside the log file.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// RunScript executes a hook command via bash in the project root.
func RunScript(ctx context.Context, name string, hook config.Hook, env *Environment) (*Result, error) {
	if hook.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(hook.Timeout)*time.Minute)
		defer cancel()
	}

	expanded := ExpandVars(hook.Run, env.Vars())

	cmd := exec.CommandContext(ctx, "bash", "-c", expanded)
	cmd.Dir = env.ProjectRoot
	cmd.Env = BuildEnv(env)

	if err := state.EnsureDir(env.StateDir); err != nil {
		return nil, err
	}
	logFile, err := os.Create(state.LogPath(env.StateDir, name))
	if err != nil {
		return nil, err
	}
	defer logFile.Close()

	var captured bytes.Buffer
	cmd.Stdout = io.MultiWriter(Stdout, logFile, &captured)
	cmd.Stderr = io.MultiWriter(Stderr, logFile, &captured)

	code, err := exitCode(cmd.Run())
	if err != nil {
		return nil, err
	}

	return &Result{ExitCode: code, Output: captured.String()}, nil
}
