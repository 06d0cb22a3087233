package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var flags globalFlags

	ctx := newCommandContext(&flags)

	rootCmd := &cobra.Command{
		Use:           "bilimux",
		Short:         "Compile Bilibili downloads into subtitled Matroska episodes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format override (console, json)")

	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newCompileCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
