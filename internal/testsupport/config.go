package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"bilimux/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StagingDir = filepath.Join(base, "staging")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Compile.Workers = 2

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithStubbedFFmpeg writes script as an ffmpeg executable and points the
// config at it.
func WithStubbedFFmpeg(script string) ConfigOption {
	return func(b *configBuilder) {
		if script == "" {
			script = "#!/bin/sh\nexit 0\n"
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		target := filepath.Join(binDir, "ffmpeg")
		if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
			b.t.Fatalf("write ffmpeg stub: %v", err)
		}
		b.cfg.FFmpeg.Binary = target
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StagingDir)
}
