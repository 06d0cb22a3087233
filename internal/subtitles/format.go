package subtitles

import (
	"path/filepath"
	"strings"

	"bilimux/internal/services"
)

// Format identifies an on-disk subtitle encoding.
type Format int

const (
	FormatJSON Format = iota + 1
	FormatASS
	FormatSRT
	FormatWebVTT
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatASS:
		return "ass"
	case FormatSRT:
		return "srt"
	case FormatWebVTT:
		return "vtt"
	default:
		return "unknown"
	}
}

// Native reports whether f is already the muxer's input format.
func (f Format) Native() bool {
	return f == FormatASS
}

// DetectFormat maps a file extension, case-insensitively, to its Format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".ass", ".ssa":
		return FormatASS, nil
	case ".srt":
		return FormatSRT, nil
	case ".vtt":
		return FormatWebVTT, nil
	default:
		return 0, services.Wrap(ErrUnknownFormat, "subtitle", "detect format", path, nil)
	}
}
