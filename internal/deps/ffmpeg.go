package deps

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ResolveFFmpegPath returns the absolute path of the configured ffmpeg binary
// when it can be found on PATH, or the configured value unchanged.
func ResolveFFmpegPath(binary string) string {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	if resolved, err := exec.LookPath(binary); err == nil {
		return resolved
	}
	return binary
}

// FFmpegRequirement describes ffmpeg for CheckBinaries.
func FFmpegRequirement(binary string) Requirement {
	return Requirement{
		Name:        "FFmpeg",
		Command:     ResolveFFmpegPath(binary),
		Description: "Required for muxing episodes",
	}
}

// FFmpegVersion runs `<binary> -version` and returns the first output line.
func FFmpegVersion(ctx context.Context, binary string) (string, error) {
	out, err := exec.CommandContext(ctx, ResolveFFmpegPath(binary), "-version").Output()
	if err != nil {
		return "", fmt.Errorf("ffmpeg -version: %w", err)
	}
	scanner := bufio.NewScanner(bytes.NewReader(out))
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()), nil
	}
	return "", fmt.Errorf("ffmpeg -version: empty output")
}
