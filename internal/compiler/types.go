package compiler

import (
	"time"

	"bilimux/internal/metadata"
	"bilimux/internal/mux"
)

// Stage is the furthest point an episode reached.
type Stage int

const (
	StageResolved Stage = iota
	StageSubtitleNormalized
	StageMuxed
	StagePackaged
)

func (s Stage) String() string {
	switch s {
	case StageSubtitleNormalized:
		return "subtitle"
	case StageMuxed:
		return "muxed"
	case StagePackaged:
		return "packaged"
	default:
		return "resolved"
	}
}

// next names the stage an episode is working towards from s.
func (s Stage) next() string {
	switch s {
	case StageResolved:
		return "subtitle"
	case StageSubtitleNormalized:
		return "mux"
	default:
		return "package"
	}
}

// Options is the immutable configuration of one run.
type Options struct {
	Language   string
	Mode       mux.Mode
	OutputRoot string
	Copy       bool
	Parallel   bool
	Workers    int
	// StagingDir holds intermediates. Empty stages inside each episode bundle.
	StagingDir string
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return 1
	}
	return o.Workers
}

// EpisodeResult is the outcome of one episode.
type EpisodeResult struct {
	Season  metadata.Season
	Episode metadata.Episode
	Stage   Stage
	Target  string
	Err     error
	Elapsed time.Duration
}

// OK reports whether the episode was packaged.
func (r EpisodeResult) OK() bool {
	return r.Err == nil && r.Stage == StagePackaged
}

// SeasonResult collects the attempted episodes of a season in completion
// order. Episodes never started are absent.
type SeasonResult struct {
	Season   metadata.Season
	Episodes []EpisodeResult
}

// Complete reports whether every episode of the season was packaged.
func (r SeasonResult) Complete() bool {
	if len(r.Episodes) != len(r.Season.Episodes) {
		return false
	}
	for _, ep := range r.Episodes {
		if !ep.OK() {
			return false
		}
	}
	return true
}

// Reporter receives episode results as they finish.
type Reporter interface {
	Report(EpisodeResult)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(EpisodeResult)

// Report calls f(r).
func (f ReporterFunc) Report(r EpisodeResult) { f(r) }

type nopReporter struct{}

func (nopReporter) Report(EpisodeResult) {}
