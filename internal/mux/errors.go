package mux

import (
	"fmt"
	"strings"

	"bilimux/internal/services"
)

var (
	// ErrExternalFailure indicates ffmpeg ran and exited non-zero.
	ErrExternalFailure = fmt.Errorf("%w: ffmpeg failed", services.ErrMux)
	// ErrSpawn indicates ffmpeg could not be started.
	ErrSpawn = fmt.Errorf("%w: ffmpeg did not start", services.ErrMux)
)

// ExitError carries the exit status and captured stderr of a failed ffmpeg run.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("ffmpeg exited with code %d", e.Code)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + lastLines(stderr, 5)
	}
	return msg
}

// Is lets errors.Is(err, ErrExternalFailure) match any ExitError.
func (e *ExitError) Is(target error) bool {
	return target == ErrExternalFailure || target == services.ErrMux
}

func lastLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, " | ")
}
