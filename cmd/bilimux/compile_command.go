package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"bilimux/internal/compiler"
	"bilimux/internal/config"
	"bilimux/internal/logging"
	"bilimux/internal/metadata"
	"bilimux/internal/mux"
	"bilimux/internal/packager"
	"bilimux/internal/preflight"
	"bilimux/internal/services"
)

type compileFlags struct {
	copyFiles    bool
	language     string
	hardSubtitle bool
	parallel     bool
	workers      int
	stagingDir   string
}

func newCompileCommand(ctx *commandContext) *cobra.Command {
	var flags compileFlags

	cmd := &cobra.Command{
		Use:   "compile <input> <output>",
		Short: "Mux every episode of a download folder into the output library",
		Args:  requireArgs(2, "<input> <output>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyCompileFlags(cmd, cfg, flags); err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			input, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve input: %w", err)
			}
			output, err := config.ExpandPath(args[1])
			if err != nil {
				return fmt.Errorf("resolve output: %w", err)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			runCtx, runID := runContext(cmd)

			results := preflight.RunAll(runCtx, cfg, preflight.Targets{Input: input, Output: output})
			if failed := preflight.Failed(results); len(failed) > 0 {
				for _, line := range preflightLines(results, colorize) {
					fmt.Fprintln(out, line)
				}
				return services.Wrap(services.ErrValidation, "preflight", "", fmt.Sprintf("%d check(s) failed", len(failed)), nil)
			}

			if err := os.MkdirAll(output, 0o755); err != nil {
				return services.Wrap(packager.ErrIO, "compile", "create output root", output, err)
			}
			fsys := afero.NewOsFs()
			pkg := packager.NewPackager(fsys, output, cfg.Compile.Copy, logger)
			lock, err := pkg.Lock()
			if err != nil {
				return err
			}
			defer lock.Unlock()

			folder, err := metadata.NewResolver(fsys, logger).ResolveDownloadFolder(runCtx, input)
			if err != nil {
				return err
			}
			if len(folder.Seasons) == 0 {
				return services.Wrap(metadata.ErrEmptySeason, "compile", "resolve", "no seasons found in "+input, nil)
			}

			opts := compiler.Options{
				Language:   cfg.Compile.Language,
				Mode:       mux.ModeSoft,
				OutputRoot: output,
				Copy:       cfg.Compile.Copy,
				Parallel:   cfg.Compile.Parallel,
				Workers:    cfg.Compile.Workers,
				StagingDir: cfg.Paths.StagingDir,
			}
			if cfg.Compile.HardSubtitle {
				opts.Mode = mux.ModeHard
			}

			logging.WithContext(runCtx, logger).Info("compile started",
				logging.String(logging.FieldEventType, "run_start"),
				logging.String("input", input),
				logging.String("output", output),
				logging.Int("seasons", len(folder.Seasons)),
				logging.Int("episodes", folder.EpisodeCount()),
				logging.String("mode", opts.Mode.String()),
			)

			c := compiler.New(fsys, opts, logger,
				compiler.WithPackager(pkg),
				compiler.WithMuxer(mux.NewMuxer(fsys, logger,
					mux.WithBinary(cfg.FFmpegBinary()),
					mux.WithLogLevel(cfg.FFmpeg.LogLevel),
				)),
				compiler.WithReporter(episodeStatusReporter(out, colorize)),
			)
			seasons, runErr := c.CompileFolder(runCtx, folder)

			fmt.Fprintln(out, renderTable(
				[]string{"Season", "Episode", "Stage", "Result", "Elapsed"},
				summaryRows(seasons),
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
			))
			for _, skipped := range folder.Skipped {
				fmt.Fprintln(out, renderStatusLine(filepath.Base(skipped.Dir), statusWarn, "skipped: "+skipped.Err.Error(), colorize))
			}
			if runErr != nil {
				return fmt.Errorf("run %s: %w", runID, runErr)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&flags.copyFiles, "copy", false, "Copy finished episodes instead of moving them")
	cmd.Flags().StringVar(&flags.language, "language", "", "Subtitle language directory and track tag")
	cmd.Flags().BoolVar(&flags.hardSubtitle, "use-hard-subtitle", false, "Burn subtitles into the video")
	cmd.Flags().BoolVar(&flags.parallel, "parallel", false, "Compile episodes of a season concurrently")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "Concurrent episodes when --parallel is set")
	cmd.Flags().StringVar(&flags.stagingDir, "staging-dir", "", "Directory for intermediate files")
	return cmd
}

// applyCompileFlags overlays explicitly set flags onto cfg and revalidates.
func applyCompileFlags(cmd *cobra.Command, cfg *config.Config, flags compileFlags) error {
	changed := cmd.Flags().Changed
	if changed("copy") {
		cfg.Compile.Copy = flags.copyFiles
	}
	if changed("language") {
		cfg.Compile.Language = strings.TrimSpace(flags.language)
	}
	if changed("use-hard-subtitle") {
		cfg.Compile.HardSubtitle = flags.hardSubtitle
	}
	if changed("parallel") {
		cfg.Compile.Parallel = flags.parallel
	}
	if changed("workers") {
		cfg.Compile.Workers = flags.workers
	}
	if changed("staging-dir") {
		dir, err := config.ExpandPath(flags.stagingDir)
		if err != nil {
			return services.Wrap(services.ErrValidation, "flags", "staging-dir", flags.stagingDir, err)
		}
		cfg.Paths.StagingDir = dir
	}
	if err := cfg.Validate(); err != nil {
		return services.Wrap(services.ErrValidation, "flags", "", "", err)
	}
	return nil
}

func episodeStatusReporter(out io.Writer, colorize bool) compiler.Reporter {
	return compiler.ReporterFunc(func(r compiler.EpisodeResult) {
		label := r.Season.Title + " " + r.Episode.ID.String()
		if r.OK() {
			fmt.Fprintln(out, renderStatusLine(label, statusOK, r.Target, colorize))
			return
		}
		fmt.Fprintln(out, renderStatusLine(label, statusError, services.Category(r.Err)+": "+r.Err.Error(), colorize))
	})
}

func summaryRows(seasons []compiler.SeasonResult) [][]string {
	var rows [][]string
	for _, season := range seasons {
		for _, ep := range season.Episodes {
			result := ep.Target
			if ep.Err != nil {
				result = "failed (" + services.Category(ep.Err) + ")"
			}
			rows = append(rows, []string{
				season.Season.Title,
				ep.Episode.ID.String(),
				ep.Stage.String(),
				result,
				ep.Elapsed.Round(time.Millisecond).String(),
			})
		}
	}
	return rows
}
