package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"bilimux/internal/config"
	"bilimux/internal/metadata"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list <input>",
		Short: "Show the seasons and episodes found in a download folder",
		Args:  requireArgs(1, "<input>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			input, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve input: %w", err)
			}

			runCtx, _ := runContext(cmd)
			folder, err := metadata.NewResolver(afero.NewOsFs(), logger).ResolveDownloadFolder(runCtx, input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			if len(folder.Seasons) == 0 {
				fmt.Fprintln(out, "No seasons found")
			} else {
				fmt.Fprintln(out, renderTable(
					[]string{"Season", "Episode", "Title", "Type tag", "Video", "Audio"},
					episodeRows(folder),
					nil,
				))
				fmt.Fprintf(out, "%d season(s), %d episode(s)\n", len(folder.Seasons), folder.EpisodeCount())
			}
			if len(folder.Skipped) > 0 {
				for _, line := range renderSectionHeader("Skipped", colorize) {
					fmt.Fprintln(out, line)
				}
				for _, skipped := range folder.Skipped {
					fmt.Fprintln(out, renderStatusLine(filepath.Base(skipped.Dir), statusWarn, skipped.Err.Error(), colorize))
				}
			}
			return nil
		},
	}
}

func episodeRows(folder metadata.DownloadFolder) [][]string {
	rows := make([][]string, 0, folder.EpisodeCount())
	for _, season := range folder.Seasons {
		for _, ep := range season.Episodes {
			rows = append(rows, []string{
				season.Title,
				ep.ID.String(),
				ep.Title,
				ep.TypeTag,
				yesNo(ep.Video != ""),
				yesNo(ep.Audio != ""),
			})
		}
	}
	return rows
}
