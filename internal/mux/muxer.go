package mux

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"

	"bilimux/internal/fileutil"
	"bilimux/internal/logging"
	"bilimux/internal/services"
)

// CommandRunner executes name with args and returns its exit code and
// captured stderr. The error return is reserved for failures to start the
// process; a non-zero exit is reported through the code.
type CommandRunner func(ctx context.Context, name string, args ...string) (int, []byte, error)

// Muxer combines streams into Matroska containers using ffmpeg.
type Muxer struct {
	fs       afero.Fs
	logger   *slog.Logger
	binary   string
	logLevel string
	run      CommandRunner
}

// Option customizes a Muxer.
type Option func(*Muxer)

// WithBinary sets the ffmpeg executable.
func WithBinary(binary string) Option {
	return func(m *Muxer) {
		if strings.TrimSpace(binary) != "" {
			m.binary = binary
		}
	}
}

// WithLogLevel sets the value passed to ffmpeg -loglevel.
func WithLogLevel(level string) Option {
	return func(m *Muxer) {
		if strings.TrimSpace(level) != "" {
			m.logLevel = level
		}
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func WithCommandRunner(r CommandRunner) Option {
	return func(m *Muxer) {
		if r != nil {
			m.run = r
		}
	}
}

// NewMuxer constructs a muxer. fsys is used to finalize the output file and
// must be the filesystem ffmpeg writes to.
func NewMuxer(fsys afero.Fs, logger *slog.Logger, opts ...Option) *Muxer {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	m := &Muxer{
		fs:       fsys,
		logger:   logging.NewComponentLogger(logger, "mux"),
		binary:   "ffmpeg",
		logLevel: "error",
		run:      execRunner,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Args returns the argument list Mux would pass to ffmpeg.
func (m *Muxer) Args(req Request) []string {
	return buildArgs(req, m.logLevel, fileutil.PartialPath(req.Output))
}

// Mux runs ffmpeg for req. The container is written to a hidden sibling of
// req.Output and renamed over it once ffmpeg exits 0, so a failed run never
// leaves a truncated file at the final path.
func (m *Muxer) Mux(ctx context.Context, req Request) error {
	if m == nil {
		return fmt.Errorf("muxer not initialized")
	}
	if err := validate(req); err != nil {
		return err
	}
	if err := m.fs.MkdirAll(filepath.Dir(req.Output), 0o755); err != nil {
		return services.Wrap(services.ErrMux, "mux", "create output directory", filepath.Dir(req.Output), err)
	}

	tmpPath := fileutil.PartialPath(req.Output)
	args := buildArgs(req, m.logLevel, tmpPath)
	logger := logging.WithContext(ctx, m.logger)
	logger.Debug("executing ffmpeg",
		logging.String("binary", m.binary),
		logging.String("mode", req.Mode.String()),
		logging.String("output", req.Output),
		logging.String("args", strings.Join(args, " ")),
	)

	start := time.Now()
	code, stderr, err := m.run(ctx, m.binary, args...)
	if err != nil {
		_ = m.fs.Remove(tmpPath)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return services.Wrap(ErrSpawn, "mux", "start ffmpeg", m.binary, err)
	}
	if code != 0 {
		_ = m.fs.Remove(tmpPath)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("mux: %s: %w", req.Output, &ExitError{Code: code, Stderr: string(stderr)})
	}

	if _, err := m.fs.Stat(tmpPath); err != nil {
		return services.Wrap(services.ErrMux, "mux", "verify output", "ffmpeg did not produce "+tmpPath, err)
	}
	if err := m.fs.Rename(tmpPath, req.Output); err != nil {
		_ = m.fs.Remove(tmpPath)
		return services.Wrap(services.ErrMux, "mux", "finalize output", req.Output, err)
	}

	logger.Info("episode muxed",
		logging.String(logging.FieldEventType, "mux_complete"),
		logging.String("mode", req.Mode.String()),
		logging.String("output", req.Output),
		logging.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func validate(req Request) error {
	var missing []string
	for _, field := range []struct{ name, value string }{
		{"video", req.Video},
		{"audio", req.Audio},
		{"subtitle", req.Subtitle},
		{"output", req.Output},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return services.Wrap(services.ErrValidation, "mux", "validate request", "missing "+strings.Join(missing, ", "), nil)
	}
	return nil
}

// execRunner runs the command, capturing stderr. Cancelling ctx kills the
// process.
func execRunner(ctx context.Context, name string, args ...string) (int, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err == nil {
		return 0, stderr.Bytes(), nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// ExitCode is -1 when the process was killed by a signal.
		return exitErr.ExitCode(), stderr.Bytes(), nil
	}
	return 0, nil, err
}
