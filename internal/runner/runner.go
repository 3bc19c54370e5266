// Package runner drives a build through its ordered steps.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jorge-barreto/guidebook/internal/config"
	"github.com/jorge-barreto/guidebook/internal/content"
	"github.com/jorge-barreto/guidebook/internal/dispatch"
	"github.com/jorge-barreto/guidebook/internal/guide"
	"github.com/jorge-barreto/guidebook/internal/render"
	"github.com/jorge-barreto/guidebook/internal/state"
	"github.com/jorge-barreto/guidebook/internal/ux"
)

const hookName = "post-build"

// Runner builds one guide. Fields left nil get defaults in Run.
type Runner struct {
	Config      *config.Config
	ProjectRoot string
	StateDir    string
	Output      string // absolute output path
	Renderer    render.Renderer
	Dispatcher  dispatch.Dispatcher
	State       *state.State
	Timing      *state.Timing

	// Records reads topic records; defaults to guide.Records.
	Records func(ctx context.Context) ([]content.Record, error)

	store *content.Store
	guide *guide.Guide
	data  []byte
}

type step struct {
	name string
	desc string
	run  func(ctx context.Context) (string, error)
	skip string // reason the step does not run, if any
}

func (r *Runner) steps() []step {
	hook := step{name: hookName, desc: "run hook", run: r.hook}
	if r.Config.Hooks.PostBuild == nil {
		hook.skip = "no hook configured"
	}
	return []step{
		{name: "load", desc: "read topics from " + r.Config.Source, run: r.load},
		{name: "outline", desc: "build the table of contents", run: r.outline},
		{name: "render", desc: "render " + r.Renderer.Format(), run: r.render},
		{name: "write", desc: "write " + r.relOutput(), run: r.write},
		hook,
	}
}

// New returns a runner for cfg with the default dispatcher.
func New(cfg *config.Config, projectRoot string) (*Runner, error) {
	rend, err := render.ForFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	return &Runner{
		Config:      cfg,
		ProjectRoot: projectRoot,
		StateDir:    filepath.Join(projectRoot, config.StateDir),
		Output:      cfg.OutputPath(projectRoot),
		Renderer:    rend,
		Dispatcher:  &dispatch.DefaultDispatcher{},
	}, nil
}

// failAndHint records the failure, saves state (warning on error),
// flushes timing, prints a hint, and returns err.
func (r *Runner) failAndHint(status string, err error) error {
	r.State.Finish(status, err)
	if saveErr := r.State.Save(r.StateDir); saveErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to save state: %v\n", saveErr)
	}
	if flushErr := r.Timing.Flush(r.StateDir); flushErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to flush timing: %v\n", flushErr)
	}
	if status == state.StatusFailed {
		ux.Hint("Diagnose with", "guidebook doctor")
	}
	return err
}

// Run executes every step in order and returns the built guide.
func (r *Runner) Run(ctx context.Context) (*guide.Guide, error) {
	if err := state.EnsureDir(r.StateDir); err != nil {
		return nil, err
	}
	if r.State == nil {
		r.State = state.New(r.Renderer.Format(), r.relOutput())
	}
	if r.Timing == nil {
		r.Timing = state.NewTiming(r.State.BuildID)
	}
	if r.Records == nil {
		r.Records = func(ctx context.Context) ([]content.Record, error) {
			return guide.Records(ctx, r.Config, r.ProjectRoot)
		}
	}
	log := ux.LoggerFrom(ctx)
	log.Debug("build started", "id", r.State.BuildID, "format", r.State.Format, "output", r.Output)

	steps := r.steps()
	for i, s := range steps {
		if ctx.Err() != nil {
			return nil, r.failAndHint(state.StatusInterrupted, ctx.Err())
		}

		if s.skip != "" {
			ux.StepSkip(i, s.name, s.skip)
			continue
		}

		r.State.Step = s.name
		if err := r.State.Save(r.StateDir); err != nil {
			return nil, fmt.Errorf("saving state before %s: %w", s.name, err)
		}

		ux.StepHeader(i, len(steps), s.name, s.desc)
		r.Timing.AddStart(s.name)
		start := time.Now()
		detail, err := s.run(ctx)

		if ctx.Err() != nil {
			return nil, r.failAndHint(state.StatusInterrupted, ctx.Err())
		}
		if err != nil {
			ux.StepFail(i, s.name, err.Error())
			return nil, r.failAndHint(state.StatusFailed, fmt.Errorf("step %q: %w", s.name, err))
		}

		r.Timing.AddEnd(s.name)
		log.Debug("step finished", "step", s.name, "duration", r.Timing.Duration(s.name))
		if err := r.Timing.Flush(r.StateDir); err != nil {
			log.Warn("failed to flush timing", "err", err)
		}
		ux.StepComplete(i, detail, time.Since(start))
	}

	r.State.Finish(state.StatusCompleted, nil)
	if err := r.State.Save(r.StateDir); err != nil {
		return nil, fmt.Errorf("saving final state: %w", err)
	}
	if err := r.Timing.Flush(r.StateDir); err != nil {
		return nil, fmt.Errorf("flushing timing: %w", err)
	}
	ux.Success(r.relOutput(), len(r.guide.Topics))
	return r.guide, nil
}

func (r *Runner) load(ctx context.Context) (string, error) {
	records, err := r.Records(ctx)
	if err != nil {
		return "", err
	}
	store, err := content.Load(records)
	if err != nil {
		return "", err
	}
	r.store = store
	return fmt.Sprintf("%d topics", store.Len()), nil
}

func (r *Runner) outline(ctx context.Context) (string, error) {
	g, err := guide.Assemble(r.Config.Title, r.store)
	if err != nil {
		return "", err
	}
	r.guide = g
	r.State.TopicCount = len(g.Topics)
	return fmt.Sprintf("%d entries", len(g.Outline)), nil
}

func (r *Runner) render(ctx context.Context) (string, error) {
	data, err := render.Bytes(r.Renderer, r.guide.Document())
	if err != nil {
		return "", err
	}
	r.data = data
	return fmt.Sprintf("%d bytes", len(data)), nil
}

func (r *Runner) write(ctx context.Context) (string, error) {
	if err := state.WriteFileAtomic(r.Output, r.data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", r.relOutput(), err)
	}
	r.State.Checksum(r.data)
	return "sha256 " + r.State.SHA256[:12], nil
}

func (r *Runner) hook(ctx context.Context) (string, error) {
	if r.Dispatcher == nil {
		return "", errors.New("no dispatcher configured")
	}
	env := r.Environment()
	result, err := r.Dispatcher.Dispatch(ctx, hookName, *r.Config.Hooks.PostBuild, env)
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", fmt.Errorf("exited with code %d", result.ExitCode)
	}
	return "", nil
}

// Environment returns the hook environment for the current build.
func (r *Runner) Environment() *dispatch.Environment {
	env := &dispatch.Environment{
		ProjectRoot: r.ProjectRoot,
		StateDir:    r.StateDir,
		Title:       r.Config.Title,
		Output:      r.Output,
		Format:      r.Renderer.Format(),
	}
	if r.State != nil {
		env.BuildID = r.State.BuildID
		env.TopicCount = r.State.TopicCount
	}
	env.CustomVars = dispatch.ExpandConfigVars(r.Config.Vars, env.Vars())
	return env
}

func (r *Runner) relOutput() string {
	if rel, err := filepath.Rel(r.ProjectRoot, r.Output); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return r.Output
}

// DryRunPrint prints the build plan without executing.
func (r *Runner) DryRunPrint() {
	steps := r.steps()
	fmt.Fprintf(ux.Out, "\n%s\n\n", ux.StyleBold.Render(fmt.Sprintf("Dry run: %d steps", len(steps))))
	for i, s := range steps {
		fmt.Fprintf(ux.Out, "  %s %s %s\n",
			ux.StyleCommand.Render(fmt.Sprintf("%d.", i+1)),
			ux.StyleBold.Render(s.name),
			ux.StyleDim.Render("- "+s.desc))
		if s.skip != "" {
			fmt.Fprintf(ux.Out, "     skipped: %s\n", s.skip)
			continue
		}
		if s.name == hookName {
			hook := r.Config.Hooks.PostBuild
			fmt.Fprintf(ux.Out, "     run: %s\n", dispatch.ExpandVars(hook.Run, r.Environment().Vars()))
			fmt.Fprintf(ux.Out, "     timeout: %dm\n", hook.Timeout)
		}
	}
	fmt.Fprintln(ux.Out)
}
