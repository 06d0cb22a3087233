package deps

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeStub(t *testing.T, path, script string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	writeStub(t, present, "#!/bin/sh\nexit 0\n")
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("unexpected blank status: %#v", results[2])
	}
}

func TestResolveFFmpegPathFromPATH(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs")
	}
	binDir := t.TempDir()
	ffmpegPath := filepath.Join(binDir, "ffmpeg")
	writeStub(t, ffmpegPath, "#!/bin/sh\nexit 0\n")
	t.Setenv("PATH", binDir)

	if got := ResolveFFmpegPath(""); got != ffmpegPath {
		t.Fatalf("expected %q, got %q", ffmpegPath, got)
	}
	if got := ResolveFFmpegPath("ffmpeg-missing"); got != "ffmpeg-missing" {
		t.Fatalf("expected unresolved name passthrough, got %q", got)
	}
}

func TestFFmpegVersion(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs")
	}
	stub := filepath.Join(t.TempDir(), "ffmpeg")
	writeStub(t, stub, "#!/bin/sh\necho 'ffmpeg version 7.1 Copyright'\necho 'built with gcc'\n")

	got, err := FFmpegVersion(context.Background(), stub)
	if err != nil {
		t.Fatalf("FFmpegVersion: %v", err)
	}
	if got != "ffmpeg version 7.1 Copyright" {
		t.Fatalf("unexpected version line %q", got)
	}
}
