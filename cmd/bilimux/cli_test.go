package main

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"bilimux/internal/config"
	"bilimux/internal/testsupport"
)

const ffmpegStub = `#!/bin/sh
if [ "$1" = "-version" ]; then
  echo "ffmpeg version 7.0-test"
  exit 0
fi
for last; do :; done
printf 'mkv' > "$last"
`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	input      string
	output     string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, append([]testsupport.ConfigOption{testsupport.WithStubbedFFmpeg(ffmpegStub)}, opts...)...)
	cfg.Logging.Level = "error"
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	env := &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		input:      filepath.Join(base, "download"),
		output:     filepath.Join(base, "library"),
	}
	fs := afero.NewOsFs()
	for _, idx := range []string{"1", "2"} {
		testsupport.WriteEpisode(t, fs, filepath.Join(env.input, "s_100"), testsupport.Episode{Title: "Show", Index: idx, TypeTag: "80"})
	}
	return env
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestListShowsEpisodes(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"list", env.input}, env.configPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "EP01")
	requireContains(t, out, "EP02")
	requireContains(t, out, "1 season(s), 2 episode(s)")
}

func TestListReportsSkippedSeasons(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.MkdirAll(filepath.Join(env.input, "empty_season"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	out, _, err := runCLI(t, []string{"list", env.input}, env.configPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "Skipped")
	requireContains(t, out, "empty_season")
}

func TestCompileCopiesEpisodes(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"compile", "--copy", "--parallel", "--workers", "2", env.input, env.output}, env.configPath)
	if err != nil {
		t.Fatalf("compile: %v\n%s", err, out)
	}
	fs := afero.NewOsFs()
	for _, name := range []string{"Show EP01.mkv", "Show EP02.mkv"} {
		target := filepath.Join(env.output, "Show", name)
		if got := testsupport.ReadText(t, fs, target); got != "mkv" {
			t.Fatalf("unexpected %s content %q", name, got)
		}
		requireContains(t, out, target)
	}
	testsupport.AssertExists(t, fs, filepath.Join(env.input, "s_100", "c_1", "en", "sub.json"))
	testsupport.AssertMissing(t, fs, filepath.Join(env.input, "s_100", "c_1", "subtitle.ass"))
	testsupport.AssertMissing(t, fs, filepath.Join(env.input, "s_100", "c_1", "80", "episode.mkv"))
	requireContains(t, out, "packaged")
}

func sourceFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return files
}

func TestCompileCopyLeavesDownloadUntouched(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Paths.StagingDir = ""
	writeTestConfig(t, env.configPath, env.cfg)
	before := sourceFiles(t, env.input)

	out, _, err := runCLI(t, []string{"compile", "--copy", env.input, env.output}, env.configPath)
	if err != nil {
		t.Fatalf("compile: %v\n%s", err, out)
	}
	if after := sourceFiles(t, env.input); !slices.Equal(before, after) {
		t.Fatalf("download tree changed:\nbefore %q\nafter  %q", before, after)
	}
	osFs := afero.NewOsFs()
	testsupport.AssertExists(t, osFs, filepath.Join(env.output, "Show", "Show EP01.mkv"))
	testsupport.AssertExists(t, osFs, filepath.Join(env.output, "Show", "Show EP02.mkv"))
	testsupport.AssertMissing(t, osFs, filepath.Join(env.output, ".bilimux-staging"))
}

func TestCompileFailsPreflightWithoutFFmpeg(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.FFmpeg.Binary = filepath.Join(testsupport.BaseDir(env.cfg), "missing", "ffmpeg")
	writeTestConfig(t, env.configPath, env.cfg)

	out, _, err := runCLI(t, []string{"compile", env.input, env.output}, env.configPath)
	if err == nil {
		t.Fatal("expected preflight failure")
	}
	requireContains(t, out, "[ERROR]")
	if _, statErr := os.Stat(filepath.Join(env.output, "Show")); !os.IsNotExist(statErr) {
		t.Fatalf("nothing should be packaged, stat err=%v", statErr)
	}
}

func TestCompileRejectsInvalidLanguage(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"compile", "--language", "!!", env.input, env.output}, env.configPath)
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestCompileRequiresTwoArguments(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"compile", env.input}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "usage") {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestCheckReportsEnvironment(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"check", env.input, env.output}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	requireContains(t, out, "Input directory")
	requireContains(t, out, "[OK] ready")
	requireContains(t, out, "ffmpeg version 7.0-test")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected refusal to overwrite existing config")
	}
}
