// Package dispatch runs the shell hooks configured around a build.
package dispatch

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/jorge-barreto/guidebook/internal/config"
)

// Environment holds what a hook can see about the build that triggered it.
type Environment struct {
	ProjectRoot string
	StateDir    string
	Title       string
	Output      string
	Format      string
	BuildID     string
	TopicCount  int
	CustomVars  map[string]string
}

// Vars returns the variable substitution map for hook commands.
// Custom vars are included first; built-ins always win.
func (e *Environment) Vars() map[string]string {
	m := make(map[string]string, 6+len(e.CustomVars))
	for k, v := range e.CustomVars {
		m[k] = v
	}
	m["TITLE"] = e.Title
	m["OUTPUT"] = e.Output
	m["FORMAT"] = e.Format
	m["TOPIC_COUNT"] = strconv.Itoa(e.TopicCount)
	m["BUILD_ID"] = e.BuildID
	m["PROJECT_ROOT"] = e.ProjectRoot
	return m
}

// BuildEnv returns the environment for hook processes: the current
// environment plus every variable exported with a GUIDE_ prefix.
func BuildEnv(env *Environment) []string {
	base := os.Environ()
	vars := env.Vars()
	result := make([]string, len(base), len(base)+len(vars))
	copy(result, base)
	for _, k := range sortedKeys(vars) {
		result = append(result, "GUIDE_"+k+"="+vars[k])
	}
	return result
}

// Result holds the outcome of a hook run.
type Result struct {
	ExitCode int
	Output   string
}

// Dispatcher runs a named hook. Tests can substitute a mock.
type Dispatcher interface {
	Dispatch(ctx context.Context, name string, hook config.Hook, env *Environment) (*Result, error)
}

// DefaultDispatcher runs hooks through bash.
type DefaultDispatcher struct{}

func (d *DefaultDispatcher) Dispatch(ctx context.Context, name string, hook config.Hook, env *Environment) (*Result, error) {
	if hook.Run == "" {
		return nil, fmt.Errorf("hook %q has no command", name)
	}
	return RunScript(ctx, name, hook, env)
}
