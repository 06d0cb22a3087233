package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"bilimux/internal/config"
	"bilimux/internal/logging"
	"bilimux/internal/services"
)

type globalFlags struct {
	config    string
	logLevel  string
	logFormat string
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "load", "", err)
			return
		}
		if level := strings.TrimSpace(c.flags.logLevel); level != "" {
			cfg.Logging.Level = strings.ToLower(level)
		}
		if format := strings.TrimSpace(c.flags.logFormat); format != "" {
			cfg.Logging.Format = strings.ToLower(format)
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "apply flags", "", err)
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// runContext tags the command context with a fresh run id.
func runContext(cmd *cobra.Command) (context.Context, string) {
	id := uuid.NewString()
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return services.WithRunID(parent, id), id
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func requireArgs(n int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return services.Wrap(services.ErrValidation, "", "", fmt.Sprintf("usage: %s %s", cmd.CommandPath(), usage), nil)
		}
		return cobra.MaximumNArgs(n)(cmd, args)
	}
}
