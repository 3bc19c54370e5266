package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"

	"github.com/jorge-barreto/guidebook/internal/config"
	"github.com/jorge-barreto/guidebook/internal/dispatch"
	"github.com/jorge-barreto/guidebook/internal/guide"
	"github.com/jorge-barreto/guidebook/internal/mcpserver"
	"github.com/jorge-barreto/guidebook/internal/runner"
	"github.com/jorge-barreto/guidebook/internal/server"
	"github.com/jorge-barreto/guidebook/internal/ux"
	"github.com/jorge-barreto/guidebook/internal/watch"
)

func debounceFlag() cli.Flag {
	return &cli.DurationFlag{Name: "debounce", Value: watch.DefaultDebounce, Usage: "Quiet period before reacting to changes"}
}

// watcherFor watches the project's source and guide.yaml, calling reload
// after each burst of changes.
func watcherFor(ctx context.Context, p *project, cmd *cli.Command, reload func(ctx context.Context)) *watch.Watcher {
	logger := ux.LoggerFrom(ctx)
	return &watch.Watcher{
		Paths:    []string{p.cfg.SourcePath(p.root), p.configPath()},
		Debounce: cmd.Duration("debounce"),
		Log:      logger,
		OnChange: func(ctx context.Context, changed []string) {
			logger.Info("change detected", "files", len(changed))
			logger.Debug("changed", "paths", changed)
			reload(ctx)
		},
	}
}

// reloadConfig rereads guide.yaml, keeping the previous config on error.
func reloadConfig(ctx context.Context, p *project) *config.Config {
	cfg, err := config.Load(p.configPath(), p.root)
	if err != nil {
		ux.LoggerFrom(ctx).Error("reloading config", "err", err)
		return p.cfg
	}
	cfg.IncludeDrafts = cfg.IncludeDrafts || p.cfg.IncludeDrafts
	return cfg
}

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Rebuild the guide whenever a topic or guide.yaml changes",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "drafts", Usage: "Include topics marked draft"},
			debounceFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := loadProject()
			if err != nil {
				return err
			}
			if cmd.Bool("drafts") {
				p.cfg.IncludeDrafts = true
			}
			if err := dispatch.Preflight(p.cfg); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			logger := ux.LoggerFrom(ctx)

			build := func(ctx context.Context) {
				p.cfg = reloadConfig(ctx, p)
				r, err := runner.New(p.cfg, p.root)
				if err != nil {
					logger.Error("build", "err", err)
					return
				}
				if _, err := r.Run(ctx); err != nil && ctx.Err() == nil {
					logger.Error("build failed", "err", err)
				}
			}
			build(ctx)
			logger.Info("watching for changes", "source", p.cfg.Source)
			return watcherFor(ctx, p, cmd, build).Run(ctx)
		},
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the guide over HTTP for preview",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "Listen address (default from guide.yaml serve.addr)"},
			&cli.BoolFlag{Name: "watch", Aliases: []string{"w"}, Usage: "Reload the guide when topics change"},
			&cli.BoolFlag{Name: "drafts", Usage: "Include topics marked draft"},
			debounceFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := loadProject()
			if err != nil {
				return err
			}
			if cmd.Bool("drafts") {
				p.cfg.IncludeDrafts = true
			}
			g, err := guide.Load(ctx, p.cfg, p.root)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			logger := ux.LoggerFrom(ctx)

			srv, err := server.New(g, logger)
			if err != nil {
				return err
			}
			addr := cmd.String("addr")
			if addr == "" {
				addr = p.cfg.Serve.Addr
			}
			if cmd.Bool("watch") {
				w := watcherFor(ctx, p, cmd, func(ctx context.Context) {
					p.cfg = reloadConfig(ctx, p)
					g, err := guide.Load(ctx, p.cfg, p.root)
					if err == nil {
						err = srv.Swap(g)
					}
					if err != nil {
						logger.Error("reload failed, still serving the previous guide", "err", err)
						return
					}
					logger.Info("guide reloaded", "topics", len(g.Topics))
				})
				go func() {
					if err := w.Run(ctx); err != nil {
						logger.Error("watch stopped", "err", err)
					}
				}()
			}
			return srv.ListenAndServe(ctx, addr)
		},
	}
}

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve the guide to MCP clients over stdio",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "watch", Aliases: []string{"w"}, Usage: "Reload the guide when topics change"},
			&cli.BoolFlag{Name: "drafts", Usage: "Include topics marked draft"},
			debounceFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := loadProject()
			if err != nil {
				return err
			}
			if cmd.Bool("drafts") {
				p.cfg.IncludeDrafts = true
			}
			g, err := guide.Load(ctx, p.cfg, p.root)
			if err != nil {
				return err
			}
			s, err := mcpserver.New(g)
			if err != nil {
				return err
			}
			logger := ux.LoggerFrom(ctx)

			if cmd.Bool("watch") {
				ctx, cancel := context.WithCancel(ctx)
				defer cancel()
				w := watcherFor(ctx, p, cmd, func(ctx context.Context) {
					p.cfg = reloadConfig(ctx, p)
					g, err := guide.Load(ctx, p.cfg, p.root)
					if err != nil {
						logger.Error("reload failed, still serving the previous guide", "err", err)
						return
					}
					s.Swap(g)
					logger.Info("guide reloaded", "topics", len(g.Topics))
				})
				go func() {
					if err := w.Run(ctx); err != nil {
						logger.Error("watch stopped", "err", err)
					}
				}()
			}

			logger.Debug("mcp server starting", "topics", len(g.Topics))
			return s.Run(ctx)
		},
	}
}
