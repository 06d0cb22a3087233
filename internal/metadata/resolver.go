package metadata

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"bilimux/internal/logging"
	"bilimux/internal/services"
)

// Resolver reads download trees from a filesystem.
type Resolver struct {
	fs     afero.Fs
	logger *slog.Logger
}

// NewResolver constructs a Resolver over fsys. A nil logger discards output.
func NewResolver(fsys afero.Fs, logger *slog.Logger) *Resolver {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Resolver{fs: fsys, logger: logging.NewComponentLogger(logger, "metadata")}
}

// ResolveEpisode reads one episode bundle.
func (r *Resolver) ResolveEpisode(ctx context.Context, dir string) (Episode, error) {
	if err := ctx.Err(); err != nil {
		return Episode{}, err
	}
	desc, err := ReadDescriptor(r.fs, dir)
	if err != nil {
		return Episode{}, err
	}
	ep := Episode{
		Title:       strings.TrimSpace(desc.Ep.IndexTitle),
		SeasonTitle: strings.TrimSpace(desc.Title),
		ID:          ParseEpisodeID(strings.TrimSpace(desc.Ep.Index)),
		Dir:         dir,
		TypeTag:     strings.TrimSpace(desc.TypeTag),
	}
	if ep.Video, err = r.findStream(ep.StreamDir(), "video"); err != nil {
		return Episode{}, err
	}
	if ep.Audio, err = r.findStream(ep.StreamDir(), "audio"); err != nil {
		return Episode{}, err
	}
	return ep, nil
}

// findStream returns the first <dir>/<name>.* file in lexical order, or ""
// when there is none.
func (r *Resolver) findStream(dir, name string) (string, error) {
	matches, err := afero.Glob(r.fs, filepath.Join(dir, name+".*"))
	if err != nil {
		return "", services.Wrap(ErrInvalidDescriptor, "metadata", "locate stream", dir, err)
	}
	slices.Sort(matches)
	for _, m := range matches {
		if info, err := r.fs.Stat(m); err == nil && info.Mode().IsRegular() {
			return m, nil
		}
	}
	return "", nil
}

// ResolveSeason reads every episode bundle below dir. Any episode failure
// fails the season.
func (r *Resolver) ResolveSeason(ctx context.Context, dir string) (Season, error) {
	dirs, err := subdirectories(r.fs, dir)
	if err != nil {
		return Season{}, services.Wrap(services.ErrMetadata, "metadata", "read season", dir, err)
	}
	if len(dirs) == 0 {
		return Season{}, services.Wrap(ErrEmptySeason, "metadata", "read season", dir, nil)
	}

	season := Season{Dir: dir, Episodes: make([]Episode, 0, len(dirs))}
	for _, epDir := range dirs {
		ep, err := r.ResolveEpisode(ctx, epDir)
		if err != nil {
			return Season{}, err
		}
		if season.Title == "" {
			season.Title = ep.SeasonTitle
		}
		season.Episodes = append(season.Episodes, ep)
	}
	SortEpisodes(season.Episodes)
	for i := 1; i < len(season.Episodes); i++ {
		prev, cur := season.Episodes[i-1], season.Episodes[i]
		if prev.ID.Compare(cur.ID) == 0 {
			return Season{}, services.Wrap(ErrInvalidDescriptor, "metadata", "duplicate episode",
				fmt.Sprintf("%s in %s and %s", cur.ID, prev.Dir, cur.Dir), nil)
		}
	}

	r.logger.Debug("season resolved",
		logging.String(logging.FieldSeason, season.Title),
		logging.Int("episodes", len(season.Episodes)),
	)
	return season, nil
}

// ResolveDownloadFolder reads every season below root. Seasons that fail to
// resolve are logged and recorded in Skipped; only an unreadable root is an
// error.
func (r *Resolver) ResolveDownloadFolder(ctx context.Context, root string) (DownloadFolder, error) {
	dirs, err := subdirectories(r.fs, root)
	if err != nil {
		return DownloadFolder{}, services.Wrap(services.ErrMetadata, "metadata", "read download folder", root, err)
	}

	logger := logging.WithContext(ctx, r.logger)
	folder := DownloadFolder{Root: root}
	for _, dir := range dirs {
		season, err := r.ResolveSeason(ctx, dir)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return DownloadFolder{}, ctxErr
			}
			logging.WarnWithContext(logger, "season skipped", "season_unresolved",
				logging.String("dir", dir),
				logging.Error(err),
			)
			folder.Skipped = append(folder.Skipped, SkippedSeason{Dir: dir, Err: err})
			continue
		}
		folder.Seasons = append(folder.Seasons, season)
	}
	SortSeasons(folder.Seasons)
	return folder, nil
}

// subdirectories lists the non-hidden immediate subdirectories of dir in
// name order.
func subdirectories(fsys afero.Fs, dir string) ([]string, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		dirs = append(dirs, filepath.Join(dir, entry.Name()))
	}
	return dirs, nil
}
