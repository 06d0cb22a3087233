package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"bilimux/internal/config"
)

func TestLoadDefaultConfigWhenAbsent(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	want := filepath.Join(tempHome, ".config", "bilimux", "config.toml")
	if resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if cfg.Compile.Language != "en" {
		t.Fatalf("expected default language en, got %q", cfg.Compile.Language)
	}
	if cfg.Compile.HardSubtitle || cfg.Compile.Copy || cfg.Compile.Parallel {
		t.Fatalf("expected boolean compile defaults to be false: %+v", cfg.Compile)
	}
	if cfg.Compile.Workers < 1 {
		t.Fatalf("expected positive worker default, got %d", cfg.Compile.Workers)
	}
	if cfg.Paths.StagingDir != "" {
		t.Fatalf("expected empty staging dir, got %q", cfg.Paths.StagingDir)
	}
	if cfg.FFmpegBinary() != "ffmpeg" {
		t.Fatalf("unexpected ffmpeg binary: %q", cfg.FFmpegBinary())
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	configPath := filepath.Join(t.TempDir(), "bilimux.toml")

	type payload struct {
		Compile struct {
			Language string `toml:"language"`
			Copy     bool   `toml:"copy"`
			Workers  int    `toml:"workers"`
		} `toml:"compile"`
		Paths struct {
			StagingDir string `toml:"staging_dir"`
		} `toml:"paths"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Compile.Language = " zh-Hans "
	custom.Compile.Copy = true
	custom.Compile.Workers = 3
	custom.Paths.StagingDir = "~/staging"
	custom.Logging.Format = "JSON"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Compile.Language != "zh-Hans" {
		t.Fatalf("expected trimmed language, got %q", cfg.Compile.Language)
	}
	if !cfg.Compile.Copy || cfg.Compile.Workers != 3 {
		t.Fatalf("unexpected compile section: %+v", cfg.Compile)
	}
	if cfg.Paths.StagingDir != filepath.Join(tempHome, "staging") {
		t.Fatalf("expected tilde expansion, got %q", cfg.Paths.StagingDir)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected lower-cased log format, got %q", cfg.Logging.Format)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bilimux.toml")
	if err := os.WriteFile(configPath, []byte("[compile]\nlanguag = \"en\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestFFmpegEnvFallback(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("BILIMUX_FFMPEG", "/opt/ffmpeg/bin/ffmpeg")
	t.Chdir(t.TempDir())

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.FFmpegBinary() != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("expected env override, got %q", cfg.FFmpegBinary())
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"empty language", func(c *config.Config) { c.Compile.Language = "" }, "compile.language"},
		{"malformed language", func(c *config.Config) { c.Compile.Language = "not a tag" }, "compile.language"},
		{"zero workers", func(c *config.Config) { c.Compile.Workers = 0 }, "compile.workers"},
		{"negative workers", func(c *config.Config) { c.Compile.Workers = -2 }, "compile.workers"},
		{"ffmpeg loglevel", func(c *config.Config) { c.FFmpeg.LogLevel = "chatty" }, "ffmpeg.loglevel"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"log level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in error, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Compile.Workers < 1 {
		t.Fatalf("workers = 0 in sample should normalize to CPU count, got %d", cfg.Compile.Workers)
	}
}
