package preflight

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"bilimux/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckCreatableDirectory(t *testing.T) {
	root := t.TempDir()
	result := CheckCreatableDirectory("out", filepath.Join(root, "a", "b"))
	if !result.Passed {
		t.Fatalf("expected nested missing dir under temp root to be creatable: %s", result.Detail)
	}
}

func TestRunAllFlagsMissingInput(t *testing.T) {
	cfg := config.Default()
	cfg.FFmpeg.Binary = "clearly-not-present-ffmpeg"
	results := RunAll(context.Background(), &cfg, Targets{
		Input:  filepath.Join(t.TempDir(), "missing"),
		Output: t.TempDir(),
	})
	if len(results) != 3 {
		t.Fatalf("expected ffmpeg, input and output results, got %d", len(results))
	}
	failed := Failed(results)
	if len(failed) != 2 {
		t.Fatalf("expected ffmpeg and input to fail, got %+v", failed)
	}
	if failed[0].Name != "FFmpeg" || failed[1].Name != "Input directory" {
		t.Fatalf("unexpected failures: %+v", failed)
	}
}
