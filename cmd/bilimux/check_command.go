package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bilimux/internal/config"
	"bilimux/internal/deps"
	"bilimux/internal/preflight"
	"bilimux/internal/services"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check [input] [output]",
		Short: "Verify ffmpeg and directory access",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			var targets preflight.Targets
			if len(args) > 0 {
				if targets.Input, err = config.ExpandPath(args[0]); err != nil {
					return fmt.Errorf("resolve input: %w", err)
				}
			}
			if len(args) > 1 {
				if targets.Output, err = config.ExpandPath(args[1]); err != nil {
					return fmt.Errorf("resolve output: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			runCtx, _ := runContext(cmd)
			results := preflight.RunAll(runCtx, cfg, targets)

			for _, line := range renderSectionHeader("Environment", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, line := range preflightLines(results, colorize) {
				fmt.Fprintln(out, line)
			}
			if version, err := deps.FFmpegVersion(runCtx, cfg.FFmpegBinary()); err == nil && version != "" {
				fmt.Fprintln(out, renderStatusLine("ffmpeg version", statusInfo, version, colorize))
			}

			if failed := preflight.Failed(results); len(failed) > 0 {
				return services.Wrap(services.ErrValidation, "check", "", fmt.Sprintf("%d check(s) failed", len(failed)), nil)
			}
			return nil
		},
	}
}
