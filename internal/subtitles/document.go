package subtitles

import (
	"slices"
	"time"
)

// Cue is one timed subtitle event. Text lines are separated by '\n'.
type Cue struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// Document is a decoded subtitle: cues ordered by start time.
type Document struct {
	Cues []Cue
}

// sortCues orders cues by start, keeping the source order of cues that
// start together.
func (d *Document) sortCues() {
	slices.SortStableFunc(d.Cues, func(a, b Cue) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		default:
			return 0
		}
	})
}

// roundMillis truncates d to whole milliseconds, rounding to nearest.
func roundMillis(d time.Duration) time.Duration {
	return d.Round(time.Millisecond)
}
