// Package staging decides where per-episode intermediates live and removes
// them once an episode is finished. Intermediates never land inside the
// download tree.
package staging

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"bilimux/internal/metadata"
)

const (
	// SubtitleName is the staged ASS file name.
	SubtitleName = "subtitle.ass"
	// ContainerName is the muxed container name before packaging.
	ContainerName = "episode.mkv"
	// DefaultDirName is the staging directory created below the output root
	// when no staging directory is configured.
	DefaultDirName = ".bilimux-staging"
)

// Layout maps episodes to staging paths below Root. Owned marks a Root the
// run created itself; it is removed once empty.
type Layout struct {
	Root  string
	Owned bool
}

// NewLayout stages below dir, or below <outputRoot>/.bilimux-staging when
// dir is empty.
func NewLayout(dir, outputRoot string) Layout {
	if dir != "" {
		return Layout{Root: dir}
	}
	return Layout{Root: filepath.Join(outputRoot, DefaultDirName), Owned: true}
}

// SeasonDir returns the staging directory of season.
func (l Layout) SeasonDir(season metadata.Season) string {
	return filepath.Join(l.Root, filepath.Base(season.Dir))
}

// EpisodeDir returns the staging directory of ep.
func (l Layout) EpisodeDir(season metadata.Season, ep metadata.Episode) string {
	return filepath.Join(l.SeasonDir(season), filepath.Base(ep.Dir))
}

// SubtitlePath returns where the normalized subtitle is written.
func (l Layout) SubtitlePath(season metadata.Season, ep metadata.Episode) string {
	return filepath.Join(l.EpisodeDir(season, ep), SubtitleName)
}

// ContainerPath returns where the muxed container is written.
func (l Layout) ContainerPath(season metadata.Season, ep metadata.Episode) string {
	return filepath.Join(l.EpisodeDir(season, ep), ContainerName)
}

// CleanEpisode removes the staged subtitle and container of ep and then its
// staging directory when empty. Missing files are not an error.
func (l Layout) CleanEpisode(fsys afero.Fs, season metadata.Season, ep metadata.Episode) error {
	var errs []error
	for _, path := range []string{l.SubtitlePath(season, ep), l.ContainerPath(season, ep)} {
		if err := fsys.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	removeIfEmpty(fsys, l.EpisodeDir(season, ep))
	return errors.Join(errs...)
}

// CleanSeason removes the season staging directory when empty, and an owned
// Root once nothing is left in it. Call it after every episode of season
// has finished.
func (l Layout) CleanSeason(fsys afero.Fs, season metadata.Season) {
	removeIfEmpty(fsys, l.SeasonDir(season))
	if l.Owned {
		removeIfEmpty(fsys, l.Root)
	}
}

func removeIfEmpty(fsys afero.Fs, dir string) {
	if empty, err := afero.IsEmpty(fsys, dir); err == nil && empty {
		_ = fsys.Remove(dir)
	}
}
