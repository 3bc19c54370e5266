package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/jorge-barreto/guidebook/internal/render"
)

const (
	defaultFormat      = "html"
	defaultHookTimeout = 5
	defaultServeAddr   = "127.0.0.1:8080"
)

var varNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Builtins are the hook variables guidebook always sets.
var Builtins = map[string]bool{
	"TITLE": true, "OUTPUT": true, "FORMAT": true,
	"TOPIC_COUNT": true, "BUILD_ID": true, "PROJECT_ROOT": true,
}

// Validate checks the config for errors and sets defaults.
func Validate(cfg *Config, projectRoot string) error {
	if strings.TrimSpace(cfg.Title) == "" {
		return fmt.Errorf("config: 'title' is required")
	}
	if cfg.Source == "" {
		return fmt.Errorf("config: 'source' is required")
	}
	if _, err := os.Stat(cfg.SourcePath(projectRoot)); err != nil {
		return fmt.Errorf("config: source %q not found", cfg.Source)
	}

	if cfg.Format == "" {
		if f, ok := render.FormatFromPath(cfg.Output); ok {
			cfg.Format = f
		} else {
			cfg.Format = defaultFormat
		}
	}
	r, err := render.ForFormat(cfg.Format)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cfg.Format = r.Format()
	if cfg.Output == "" {
		cfg.Output = "dist/guide" + r.Extension()
	}

	seenVars := make(map[string]bool)
	for _, v := range cfg.Vars {
		if v.Key == "" {
			return fmt.Errorf("config: vars: empty variable name")
		}
		if !varNameRe.MatchString(v.Key) {
			return fmt.Errorf("config: vars: %q is not a valid variable name (must match [A-Za-z_][A-Za-z0-9_]*)", v.Key)
		}
		if Builtins[v.Key] {
			return fmt.Errorf("config: vars: %q overrides a built-in variable", v.Key)
		}
		if seenVars[v.Key] {
			return fmt.Errorf("config: vars: duplicate variable %q", v.Key)
		}
		seenVars[v.Key] = true
	}

	if h := cfg.Hooks.PostBuild; h != nil {
		if strings.TrimSpace(h.Run) == "" {
			return fmt.Errorf("config: hooks.post-build: 'run' is required")
		}
		if h.Timeout < 0 {
			return fmt.Errorf("config: hooks.post-build: timeout must be >= 0")
		}
		if h.Timeout == 0 {
			h.Timeout = defaultHookTimeout
		}
	}

	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = defaultServeAddr
	}
	return nil
}
