package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/guidebook/internal/config"
	"github.com/jorge-barreto/guidebook/internal/dispatch"
	"github.com/jorge-barreto/guidebook/internal/docs"
	"github.com/jorge-barreto/guidebook/internal/doctor"
	"github.com/jorge-barreto/guidebook/internal/guide"
	"github.com/jorge-barreto/guidebook/internal/render"
	"github.com/jorge-barreto/guidebook/internal/runner"
	"github.com/jorge-barreto/guidebook/internal/scaffold"
	"github.com/jorge-barreto/guidebook/internal/search"
	"github.com/jorge-barreto/guidebook/internal/state"
	"github.com/jorge-barreto/guidebook/internal/ux"
)

func main() {
	app := &cli.Command{
		Name:        "guidebook",
		Usage:       "Build a single-document guide from a set of topics",
		Description: "Run 'guidebook docs' for documentation on configuration, sources, formats and hooks.",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Enable debug logging"},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := log.InfoLevel
			if cmd.Bool("verbose") {
				level = log.DebugLevel
			}
			return ux.WithLogger(ctx, ux.NewLogger(os.Stderr, level)), nil
		},
		Commands: []*cli.Command{
			initCmd(),
			buildCmd(),
			outlineCmd(),
			readCmd(),
			searchCmd(),
			statusCmd(),
			doctorCmd(),
			watchCmd(),
			serveCmd(),
			mcpCmd(),
			docsCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		ux.Errorf("%v", err)
		os.Exit(1)
	}
}

// project is a located and validated guide.yaml.
type project struct {
	root string
	cfg  *config.Config
}

func (p *project) stateDir() string {
	return filepath.Join(p.root, config.StateDir)
}

func (p *project) configPath() string {
	return filepath.Join(p.root, config.FileName)
}

func loadProject() (*project, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, err := config.FindProjectRoot(cwd)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(filepath.Join(root, config.FileName), root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &project{root: root, cfg: cfg}, nil
}

func loadGuide(ctx context.Context) (*project, *guide.Guide, error) {
	p, err := loadProject()
	if err != nil {
		return nil, nil, err
	}
	g, err := guide.Load(ctx, p.cfg, p.root)
	if err != nil {
		return nil, nil, err
	}
	return p, g, nil
}

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create guide.yaml and sample topics in the current directory",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			return scaffold.Init(dir)
		},
	}
}

func buildCmd() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Render the guide to its output file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "Output format (" + strings.Join(render.Formats(), ", ") + ")"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output file path"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Print the build plan without executing"},
			&cli.BoolFlag{Name: "drafts", Usage: "Include topics marked draft"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := loadProject()
			if err != nil {
				return err
			}
			if err := p.cfg.Override(cmd.String("format"), cmd.String("out"), p.root); err != nil {
				return err
			}
			if cmd.Bool("drafts") {
				p.cfg.IncludeDrafts = true
			}
			if err := dispatch.Preflight(p.cfg); err != nil {
				return err
			}

			r, err := runner.New(p.cfg, p.root)
			if err != nil {
				return err
			}
			if cmd.Bool("dry-run") {
				r.DryRunPrint()
				return nil
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
			defer stop()

			_, err = r.Run(ctx)
			return err
		},
	}
}

func outlineCmd() *cli.Command {
	return &cli.Command{
		Name:  "outline",
		Usage: "Print the table of contents",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "Print as JSON"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, g, err := loadGuide(ctx)
			if err != nil {
				return err
			}
			if cmd.Bool("json") {
				enc := json.NewEncoder(ux.Out)
				enc.SetIndent("", "  ")
				return enc.Encode(g.Outline)
			}
			fmt.Fprintf(ux.Out, "\n%s\n\n", ux.StyleTitle.Render(g.Title))
			for i, e := range g.Outline {
				fmt.Fprintf(ux.Out, "  %s %s %s\n",
					ux.StyleCommand.Render(fmt.Sprintf("%2d.", i+1)), e.Title, ux.StyleDim.Render("#"+e.Anchor))
			}
			fmt.Fprintln(ux.Out)
			return nil
		},
	}
}

func readCmd() *cli.Command {
	return &cli.Command{
		Name:      "read",
		Usage:     "Print one topic",
		ArgsUsage: "<topic>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ref := strings.Join(cmd.Args().Slice(), " ")
			if ref == "" {
				return fmt.Errorf("topic argument is required (an anchor or title; see 'guidebook outline')")
			}
			_, g, err := loadGuide(ctx)
			if err != nil {
				return err
			}
			i, ok := g.Find(ref)
			if !ok {
				return fmt.Errorf("no topic %q; run 'guidebook outline' to list topics", ref)
			}
			return render.TopicTerminal(ux.Out, g.Section(i))
		},
	}
}

func searchCmd() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search topics by keyword",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Value: search.DefaultLimit, Usage: "Maximum number of results"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			query := strings.Join(cmd.Args().Slice(), " ")
			if strings.TrimSpace(query) == "" {
				return fmt.Errorf("query argument is required")
			}
			_, g, err := loadGuide(ctx)
			if err != nil {
				return err
			}
			hits := search.Search(g.Topics, g.Outline, query, int(cmd.Int("limit")))
			if len(hits) == 0 {
				fmt.Fprintf(ux.Out, "%s\n", ux.StyleDim.Render("No matches."))
				return nil
			}
			for _, h := range hits {
				fmt.Fprintf(ux.Out, "%s %s %s\n", ux.StyleBold.Render(h.Title),
					ux.StyleDim.Render("#"+h.Anchor), ux.StyleDim.Render(fmt.Sprintf("(%.0f%%)", h.Relevance*100)))
				if h.Snippet != "" {
					fmt.Fprintf(ux.Out, "    %s\n", h.Snippet)
				}
			}
			return nil
		},
	}
}

func statusCmd() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show the last build",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := loadProject()
			if err != nil {
				return err
			}
			st, err := state.Load(p.stateDir())
			if err != nil {
				return fmt.Errorf("loading state: %w", err)
			}
			timing, err := state.LoadTiming(p.stateDir())
			if err != nil {
				return fmt.Errorf("loading timing: %w", err)
			}
			ux.RenderStatus(st, timing)
			return nil
		},
	}
}

func doctorCmd() *cli.Command {
	return &cli.Command{
		Name:  "doctor",
		Usage: "Check topics for problems and explain the last failed build",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "drafts", Usage: "Include topics marked draft"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := loadProject()
			if err != nil {
				return err
			}
			if cmd.Bool("drafts") {
				p.cfg.IncludeDrafts = true
			}
			records, err := guide.Records(ctx, p.cfg, p.root)
			if err != nil {
				return err
			}
			return doctor.Run(ux.Out, p.stateDir(), records)
		},
	}
}

func docsCmd() *cli.Command {
	return &cli.Command{
		Name:      "docs",
		Usage:     "Show documentation",
		ArgsUsage: "[topic]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "all", Usage: "Print every article"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("all") {
				return docs.ShowAll(ux.Out)
			}
			name := strings.Join(cmd.Args().Slice(), " ")
			if name == "" {
				return docs.List(ux.Out)
			}
			return docs.Show(ux.Out, name)
		},
	}
}
