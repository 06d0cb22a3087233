package compiler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"bilimux/internal/logging"
	"bilimux/internal/metadata"
	"bilimux/internal/mux"
	"bilimux/internal/packager"
	"bilimux/internal/services"
	"bilimux/internal/staging"
	"bilimux/internal/subtitles"
)

// SubtitleNormalizer writes an episode's subtitle as ASS to stagePath.
type SubtitleNormalizer interface {
	Normalize(ctx context.Context, episode metadata.Episode, language, stagePath string) (subtitles.Result, error)
}

// Muxer merges streams and subtitle into one container.
type Muxer interface {
	Mux(ctx context.Context, req mux.Request) error
}

// Packager places a finished container into the library.
type Packager interface {
	Package(ctx context.Context, season metadata.Season, episode metadata.Episode, source string) (string, error)
}

// Option customizes a Compiler.
type Option func(*Compiler)

// WithNormalizer replaces the subtitle stage.
func WithNormalizer(n SubtitleNormalizer) Option {
	return func(c *Compiler) {
		if n != nil {
			c.normalizer = n
		}
	}
}

// WithMuxer replaces the mux stage.
func WithMuxer(m Muxer) Option {
	return func(c *Compiler) {
		if m != nil {
			c.muxer = m
		}
	}
}

// WithPackager replaces the packaging stage.
func WithPackager(p Packager) Option {
	return func(c *Compiler) {
		if p != nil {
			c.packager = p
		}
	}
}

// WithReporter receives every episode result. Calls are serialized.
func WithReporter(r Reporter) Option {
	return func(c *Compiler) {
		if r != nil {
			c.reporter = r
		}
	}
}

// Compiler runs episodes through the pipeline stages.
type Compiler struct {
	fs         afero.Fs
	opts       Options
	layout     staging.Layout
	normalizer SubtitleNormalizer
	muxer      Muxer
	packager   Packager
	reporter   Reporter
	logger     *slog.Logger

	mu sync.Mutex
}

// New builds a Compiler. Stages not supplied through options are built over
// fsys with their defaults.
func New(fsys afero.Fs, opts Options, logger *slog.Logger, options ...Option) *Compiler {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	c := &Compiler{
		fs:       fsys,
		opts:     opts,
		layout:   staging.NewLayout(opts.StagingDir, opts.OutputRoot),
		reporter: nopReporter{},
		logger:   logging.NewComponentLogger(logger, "compiler"),
	}
	for _, opt := range options {
		opt(c)
	}
	if c.normalizer == nil {
		c.normalizer = subtitles.NewNormalizer(fsys, logger)
	}
	if c.muxer == nil {
		c.muxer = mux.NewMuxer(fsys, logger)
	}
	if c.packager == nil {
		c.packager = packager.NewPackager(fsys, opts.OutputRoot, opts.Copy, logger)
	}
	return c
}

// CompileFolder compiles seasons in order and stops at the first season
// that does not complete.
func (c *Compiler) CompileFolder(ctx context.Context, folder metadata.DownloadFolder) ([]SeasonResult, error) {
	results := make([]SeasonResult, 0, len(folder.Seasons))
	for _, season := range folder.Seasons {
		res, err := c.CompileSeason(ctx, season)
		results = append(results, res)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// CompileSeason compiles the normal episodes of season followed by its
// specials. The specials are not attempted when a normal episode fails.
func (c *Compiler) CompileSeason(ctx context.Context, season metadata.Season) (SeasonResult, error) {
	result := SeasonResult{Season: season}
	ctx = services.WithSeason(ctx, season.Title)
	logger := logging.WithContext(ctx, c.logger)

	if len(season.Episodes) == 0 {
		return result, services.Wrap(metadata.ErrEmptySeason, "compile", "compile season", season.Dir, nil)
	}

	logger.Info("season compile started",
		logging.String(logging.FieldEventType, "season_start"),
		logging.Int("episodes", len(season.Episodes)),
		logging.Bool("parallel", c.opts.Parallel),
		logging.Int("workers", c.opts.workers()),
	)
	start := time.Now()
	defer c.layout.CleanSeason(c.fs, season)

	for _, group := range [][]metadata.Episode{season.Normal(), season.Special()} {
		if len(group) == 0 {
			continue
		}
		if err := c.runGroup(ctx, season, group, &result); err != nil {
			logger.Error("season compile failed",
				logging.String(logging.FieldEventType, "season_failed"),
				logging.Int("packaged", packagedCount(result)),
				logging.Error(err),
			)
			return result, fmt.Errorf("season %q: %w", season.Title, err)
		}
	}

	logger.Info("season compile complete",
		logging.String(logging.FieldEventType, "season_complete"),
		logging.Int("packaged", packagedCount(result)),
		logging.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

func (c *Compiler) runGroup(ctx context.Context, season metadata.Season, group []metadata.Episode, result *SeasonResult) error {
	if !c.opts.Parallel {
		for _, ep := range group {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := c.compileEpisode(ctx, season, ep)
			c.record(result, res)
			if res.Err != nil {
				return res.Err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.workers())
	for _, ep := range group {
		g.Go(func() error {
			// Nothing new starts once a sibling failed; running episodes
			// keep the parent context and finish.
			if gctx.Err() != nil {
				return nil
			}
			res := c.compileEpisode(ctx, season, ep)
			c.record(result, res)
			return res.Err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (c *Compiler) record(result *SeasonResult, res EpisodeResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	result.Episodes = append(result.Episodes, res)
	c.reporter.Report(res)
}

// CompileEpisode runs a single episode through every stage.
func (c *Compiler) CompileEpisode(ctx context.Context, season metadata.Season, ep metadata.Episode) EpisodeResult {
	res := c.compileEpisode(services.WithSeason(ctx, season.Title), season, ep)
	c.layout.CleanSeason(c.fs, season)
	c.mu.Lock()
	c.reporter.Report(res)
	c.mu.Unlock()
	return res
}

func (c *Compiler) compileEpisode(ctx context.Context, season metadata.Season, ep metadata.Episode) EpisodeResult {
	ctx = services.WithEpisode(ctx, ep.ID.String())
	res := EpisodeResult{Season: season, Episode: ep, Stage: StageResolved}
	start := time.Now()

	logger := logging.WithContext(ctx, c.logger)
	logger.Debug("episode started", logging.String("dir", ep.Dir))

	res.Target, res.Err = c.advance(ctx, season, ep, &res.Stage)
	res.Elapsed = time.Since(start)
	if err := c.layout.CleanEpisode(c.fs, season, ep); err != nil {
		logging.WarnWithContext(logger, "staging cleanup failed", "staging_cleanup_failed",
			logging.String("dir", c.layout.EpisodeDir(season, ep)),
			logging.String(logging.FieldImpact, "intermediate files left behind"),
			logging.Error(err),
		)
	}
	if res.Err != nil {
		logging.WithContext(services.WithStage(ctx, res.Stage.next()), c.logger).Error("episode failed",
			logging.String(logging.FieldEventType, "episode_failed"),
			logging.String("error_category", services.Category(res.Err)),
			logging.Error(res.Err),
		)
		res.Err = fmt.Errorf("%s: %w", ep.Label(), res.Err)
		return res
	}

	logger.Info("episode packaged",
		logging.String(logging.FieldEventType, "episode_complete"),
		logging.String("target", res.Target),
		logging.Duration("elapsed", res.Elapsed),
	)
	return res
}

// advance moves ep through the stages, updating stage as each one succeeds.
func (c *Compiler) advance(ctx context.Context, season metadata.Season, ep metadata.Episode, stage *Stage) (string, error) {
	if !ep.HasStreams() {
		return "", services.Wrap(metadata.ErrMissingStream, "compile", "check streams", missingStreams(ep), nil)
	}

	subPath := c.layout.SubtitlePath(season, ep)
	if _, err := c.normalizer.Normalize(services.WithStage(ctx, "subtitle"), ep, c.opts.Language, subPath); err != nil {
		return "", err
	}
	*stage = StageSubtitleNormalized

	container := c.layout.ContainerPath(season, ep)
	req := mux.Request{
		Video:    ep.Video,
		Audio:    ep.Audio,
		Subtitle: subPath,
		Output:   container,
		Mode:     c.opts.Mode,
		Language: c.opts.Language,
	}
	if err := c.muxer.Mux(services.WithStage(ctx, "mux"), req); err != nil {
		return "", err
	}
	*stage = StageMuxed

	target, err := c.packager.Package(services.WithStage(ctx, "package"), season, ep, container)
	if err != nil {
		return "", err
	}
	*stage = StagePackaged
	return target, nil
}

func missingStreams(ep metadata.Episode) string {
	switch {
	case ep.Video == "" && ep.Audio == "":
		return "video and audio missing in " + ep.StreamDir()
	case ep.Video == "":
		return "video missing in " + ep.StreamDir()
	default:
		return "audio missing in " + ep.StreamDir()
	}
}

func packagedCount(result SeasonResult) int {
	n := 0
	for _, ep := range result.Episodes {
		if ep.OK() {
			n++
		}
	}
	return n
}

// IsCanceled reports whether err stems from run cancellation.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
