package subtitles

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"bilimux/internal/fileutil"
	"bilimux/internal/logging"
	"bilimux/internal/metadata"
	"bilimux/internal/services"
)

// Result reports what Normalize produced.
type Result struct {
	Source    Source
	Path      string
	Converted bool
	Cues      int
}

// Normalizer writes an episode's subtitle as ASS to a staging path.
type Normalizer struct {
	fs     afero.Fs
	logger *slog.Logger
}

// NewNormalizer constructs a Normalizer over fsys. A nil logger discards output.
func NewNormalizer(fsys afero.Fs, logger *slog.Logger) *Normalizer {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Normalizer{fs: fsys, logger: logging.NewComponentLogger(logger, "subtitles")}
}

// Normalize locates the episode's subtitle for language and writes it as ASS
// to stagePath. Native ASS/SSA files are copied byte for byte; other formats
// are converted. The source bundle is never modified.
func (n *Normalizer) Normalize(ctx context.Context, episode metadata.Episode, language, stagePath string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	src, err := Locate(n.fs, episode, language)
	if err != nil {
		return Result{}, err
	}
	if err := n.fs.MkdirAll(filepath.Dir(stagePath), 0o755); err != nil {
		return Result{}, services.Wrap(services.ErrSubtitle, "subtitle", "create staging directory", filepath.Dir(stagePath), err)
	}

	logger := logging.WithContext(ctx, n.logger)
	start := time.Now()

	if src.Format.Native() {
		if err := fileutil.CopyFileVerified(n.fs, src.Path, stagePath); err != nil {
			return Result{}, services.Wrap(services.ErrSubtitle, "subtitle", "stage native subtitle", src.Path, err)
		}
		logger.Debug("subtitle staged",
			logging.String("source", src.Path),
			logging.String("format", src.Format.String()),
		)
		return Result{Source: src, Path: stagePath}, nil
	}

	doc, err := n.decode(src)
	if err != nil {
		return Result{}, err
	}
	if err := n.writeASS(stagePath, doc); err != nil {
		return Result{}, err
	}

	logger.Debug("subtitle converted",
		logging.String("source", src.Path),
		logging.String("format", src.Format.String()),
		logging.Int("cues", len(doc.Cues)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return Result{Source: src, Path: stagePath, Converted: true, Cues: len(doc.Cues)}, nil
}

func (n *Normalizer) decode(src Source) (Document, error) {
	f, err := n.fs.Open(src.Path)
	if err != nil {
		return Document{}, services.Wrap(ErrCodec, "subtitle", "open", src.Path, err)
	}
	defer f.Close()
	return Decode(src.Format, f)
}

// writeASS encodes doc into a hidden sibling and renames it over path.
func (n *Normalizer) writeASS(path string, doc Document) error {
	tmp := fileutil.PartialPath(path)
	f, err := n.fs.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return services.Wrap(ErrCodec, "subtitle", "create", tmp, err)
	}
	if err := EncodeASS(f, doc); err != nil {
		_ = f.Close()
		_ = n.fs.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = n.fs.Remove(tmp)
		return services.Wrap(ErrCodec, "subtitle", "close", tmp, err)
	}
	if err := n.fs.Rename(tmp, path); err != nil {
		_ = n.fs.Remove(tmp)
		return services.Wrap(ErrCodec, "subtitle", "replace", path, err)
	}
	return nil
}
