package config

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

var ffmpegLogLevels = map[string]struct{}{
	"quiet": {}, "panic": {}, "fatal": {}, "error": {},
	"warning": {}, "info": {}, "verbose": {}, "debug": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCompile(); err != nil {
		return err
	}
	if err := c.validateFFmpeg(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCompile() error {
	if c.Compile.Language == "" {
		return errors.New("compile.language must be set")
	}
	if _, err := language.Parse(c.Compile.Language); err != nil {
		return fmt.Errorf("compile.language %q is not a valid language tag: %w", c.Compile.Language, err)
	}
	if c.Compile.Workers < 1 {
		return fmt.Errorf("compile.workers must be positive, got %d", c.Compile.Workers)
	}
	return nil
}

func (c *Config) validateFFmpeg() error {
	if c.FFmpeg.Binary == "" {
		return errors.New("ffmpeg.binary must be set")
	}
	if _, ok := ffmpegLogLevels[c.FFmpeg.LogLevel]; !ok {
		return fmt.Errorf("ffmpeg.loglevel %q is not recognized", c.FFmpeg.LogLevel)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not recognized", c.Logging.Level)
	}
	return nil
}
