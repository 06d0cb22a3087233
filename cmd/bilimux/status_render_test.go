package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"bilimux/internal/preflight"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Show EP01", statusError, "mux failed", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Show EP01:", "[ERROR] mux failed")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Show EP01", statusOK, "packaged", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestPreflightLines(t *testing.T) {
	lines := preflightLines([]preflight.Result{
		{Name: "FFmpeg", Passed: true, Detail: "/usr/bin/ffmpeg"},
		{Name: "Output directory", Detail: "/lib (error: permission denied)"},
	}, false)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "[OK] /usr/bin/ffmpeg") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[2], "[ERROR] failed: Output directory") {
		t.Fatalf("unexpected summary %q", lines[2])
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"Season", "Episode"}, [][]string{{"Show"}}, nil)
	if !strings.Contains(out, "Show") || !strings.Contains(out, "Episode") {
		t.Fatalf("unexpected table:\n%s", out)
	}
}
