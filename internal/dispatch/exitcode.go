package dispatch

import (
	"errors"
	"os/exec"
)

// exitCode maps a process error to an exit status. Errors that are not
// exit statuses (binary missing, context setup) are returned unchanged.
func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, err
}
