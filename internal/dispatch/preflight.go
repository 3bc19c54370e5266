package dispatch

import (
	"fmt"
	"os/exec"

	"github.com/jorge-barreto/guidebook/internal/config"
)

// Preflight checks that the binaries needed by the configured hooks are on PATH.
func Preflight(cfg *config.Config) error {
	if cfg.Hooks.PostBuild == nil {
		return nil
	}
	if _, err := exec.LookPath("bash"); err != nil {
		return fmt.Errorf("required binary not found in PATH: bash (needed by hooks.post-build)")
	}
	return nil
}
