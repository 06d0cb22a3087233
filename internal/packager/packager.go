package packager

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"bilimux/internal/fileutil"
	"bilimux/internal/logging"
	"bilimux/internal/metadata"
	"bilimux/internal/services"
	"bilimux/internal/textutil"
)

// Extension is the container extension of packaged episodes.
const Extension = ".mkv"

var (
	// ErrIO indicates a failure to create directories or place a file.
	ErrIO = fmt.Errorf("%w: i/o failure", services.ErrPackaging)
	// ErrLocked indicates another run holds the library lock.
	ErrLocked = fmt.Errorf("%w: library locked", services.ErrPackaging)
)

// Packager places episodes below an output root.
type Packager struct {
	fs     afero.Fs
	root   string
	copy   bool
	logger *slog.Logger
}

// NewPackager returns a Packager writing below root. When copyFiles is false the
// source file is moved.
func NewPackager(fsys afero.Fs, root string, copyFiles bool, logger *slog.Logger) *Packager {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Packager{
		fs:     fsys,
		root:   root,
		copy:   copyFiles,
		logger: logging.NewComponentLogger(logger, "packager"),
	}
}

// Root returns the output root.
func (p *Packager) Root() string {
	return p.root
}

// SeasonDir returns the directory holding a season's episodes.
func (p *Packager) SeasonDir(season metadata.Season) string {
	return filepath.Join(p.root, seasonName(season))
}

// TargetPath returns the final location of episode.
func (p *Packager) TargetPath(season metadata.Season, episode metadata.Episode) string {
	name := seasonName(season)
	return filepath.Join(p.root, name, name+" "+textutil.SanitizeFileName(episode.ID.String())+Extension)
}

func seasonName(season metadata.Season) string {
	if name := textutil.SanitizeFileName(season.Title); name != "" {
		return name
	}
	return textutil.SanitizeFileName(filepath.Base(season.Dir))
}

// Package copies or moves source to the episode's target path, replacing any
// existing file, and returns the target. Concurrent calls for episodes of the
// same season are safe.
func (p *Packager) Package(ctx context.Context, season metadata.Season, episode metadata.Episode, source string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	target := p.TargetPath(season, episode)
	logger := logging.WithContext(ctx, p.logger)

	if _, err := p.fs.Stat(source); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if ok, _ := fileutil.Exists(p.fs, target); ok {
				logger.Debug("source already packaged", logging.String("target", target))
				return target, nil
			}
		}
		return "", services.Wrap(ErrIO, "package", "stat source", source, err)
	}

	if err := p.fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", services.Wrap(ErrIO, "package", "create season directory", filepath.Dir(target), err)
	}

	var err error
	action := "moved"
	if p.copy {
		action = "copied"
		err = fileutil.CopyFileVerified(p.fs, source, target)
	} else {
		err = fileutil.MoveFile(p.fs, source, target)
	}
	if err != nil {
		return "", services.Wrap(ErrIO, "package", action, target, err)
	}

	logger.Info("episode packaged",
		logging.String(logging.FieldEventType, "package_complete"),
		logging.String("action", action),
		logging.String("target", target),
	)
	return target, nil
}
