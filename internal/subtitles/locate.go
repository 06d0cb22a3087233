package subtitles

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/afero"

	"bilimux/internal/metadata"
	"bilimux/internal/services"
)

// Source is a located subtitle file.
type Source struct {
	Path   string
	Format Format
}

// Locate finds the single subtitle file in <episode.Dir>/<language>/.
// Hidden entries and directories are ignored.
func Locate(fsys afero.Fs, episode metadata.Episode, language string) (Source, error) {
	dir := filepath.Join(episode.Dir, language)
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Source{}, services.Wrap(ErrDirectoryEmpty, "subtitle", "locate", dir, nil)
		}
		return Source{}, services.Wrap(ErrDirectoryEmpty, "subtitle", "locate", dir, err)
	}

	candidates := lo.Filter(entries, func(e fs.FileInfo, _ int) bool {
		return e.Mode().IsRegular() && !strings.HasPrefix(e.Name(), ".")
	})
	switch len(candidates) {
	case 0:
		return Source{}, services.Wrap(ErrDirectoryEmpty, "subtitle", "locate", dir, nil)
	case 1:
	default:
		names := lo.Map(candidates, func(e fs.FileInfo, _ int) string { return e.Name() })
		return Source{}, services.Wrap(ErrAmbiguousSubtitle, "subtitle", "locate", dir+": "+strings.Join(names, ", "), nil)
	}

	path := filepath.Join(dir, candidates[0].Name())
	format, err := DetectFormat(path)
	if err != nil {
		return Source{}, err
	}
	return Source{Path: path, Format: format}, nil
}
