package mux

import (
	"strings"

	langpkg "bilimux/internal/language"
)

// Mode selects how the subtitle is embedded.
type Mode int

const (
	// ModeSoft adds the subtitle as a separate, default track.
	ModeSoft Mode = iota
	// ModeHard burns the subtitle into the video.
	ModeHard
)

func (m Mode) String() string {
	if m == ModeHard {
		return "hard"
	}
	return "soft"
}

// Request describes one mux invocation.
type Request struct {
	Video    string
	Audio    string
	Subtitle string
	Output   string
	Mode     Mode
	Language string
}

// buildArgs constructs the ffmpeg argument list writing to target.
func buildArgs(req Request, logLevel, target string) []string {
	if logLevel == "" {
		logLevel = "error"
	}
	args := []string{
		"-y", "-hide_banner", "-loglevel", logLevel,
		"-i", req.Video,
		"-i", req.Audio,
	}

	switch req.Mode {
	case ModeHard:
		args = append(args,
			"-vf", "subtitles="+escapeFilterPath(req.Subtitle),
			"-map", "0:v:0",
			"-map", "1:a:0",
			"-c:a", "copy",
		)
	default:
		args = append(args,
			"-i", req.Subtitle,
			"-map", "0",
			"-map", "1:a:0",
			"-map", "2",
			"-c", "copy",
			"-metadata:s:s:0", "language="+langpkg.ToISO3(req.Language),
			"-metadata:s:s:0", "title="+langpkg.DisplayName(req.Language),
			"-disposition:s:0", "default",
		)
	}

	return append(args, "-f", "matroska", target)
}

// filterPathEscaper quotes a path for use as a filtergraph option value:
// one level for the option parser, one for the graph parser.
var filterPathEscaper = strings.NewReplacer(
	`\`, `\\\\`,
	`'`, `\\\'`,
	`:`, `\\:`,
	`,`, `\,`,
	`;`, `\;`,
	`[`, `\[`,
	`]`, `\]`,
)

func escapeFilterPath(path string) string {
	return filterPathEscaper.Replace(path)
}
