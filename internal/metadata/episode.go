package metadata

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Episode is one resolved episode bundle. Values are never mutated after the
// Resolver creates them.
type Episode struct {
	Title       string
	SeasonTitle string
	ID          EpisodeID
	Dir         string
	TypeTag     string
	// Video and Audio are the raw stream paths under <Dir>/<TypeTag>/, empty
	// when the bundle lacks them.
	Video string
	Audio string
}

// StreamDir returns the directory holding the raw streams.
func (e Episode) StreamDir() string {
	return filepath.Join(e.Dir, e.TypeTag)
}

// HasStreams reports whether both raw streams were found.
func (e Episode) HasStreams() bool {
	return e.Video != "" && e.Audio != ""
}

// Label returns a log-friendly name such as "EP01 The Beginning".
func (e Episode) Label() string {
	if title := strings.TrimSpace(e.Title); title != "" {
		return e.ID.String() + " " + title
	}
	return e.ID.String()
}

// Season groups the episodes of one season directory.
type Season struct {
	Title    string
	Dir      string
	Episodes []Episode
}

// Normal returns the numbered episodes in order.
func (s Season) Normal() []Episode {
	return lo.Filter(s.Episodes, func(e Episode, _ int) bool { return !e.ID.IsSpecial() })
}

// Special returns the special episodes in order.
func (s Season) Special() []Episode {
	return lo.Filter(s.Episodes, func(e Episode, _ int) bool { return e.ID.IsSpecial() })
}

// SkippedSeason records a season directory that failed to resolve.
type SkippedSeason struct {
	Dir string
	Err error
}

// DownloadFolder is the resolved download root.
type DownloadFolder struct {
	Root    string
	Seasons []Season
	Skipped []SkippedSeason
}

// EpisodeCount returns the total number of episodes across all seasons.
func (f DownloadFolder) EpisodeCount() int {
	return lo.SumBy(f.Seasons, func(s Season) int { return len(s.Episodes) })
}

// SortEpisodes orders episodes by identity, breaking ties by directory.
func SortEpisodes(episodes []Episode) {
	slices.SortStableFunc(episodes, func(a, b Episode) int {
		if c := a.ID.Compare(b.ID); c != 0 {
			return c
		}
		return strings.Compare(a.Dir, b.Dir)
	})
}

// SortSeasons orders seasons by title, breaking ties by directory.
func SortSeasons(seasons []Season) {
	slices.SortStableFunc(seasons, func(a, b Season) int {
		if c := strings.Compare(a.Title, b.Title); c != 0 {
			return c
		}
		return strings.Compare(a.Dir, b.Dir)
	})
}
