package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCompile()
	c.normalizeFFmpeg()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.StagingDir, err = expandPath(strings.TrimSpace(c.Paths.StagingDir)); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCompile() {
	c.Compile.Language = strings.TrimSpace(c.Compile.Language)
	if c.Compile.Language == "" {
		c.Compile.Language = defaultLanguage
	}
	if c.Compile.Workers == 0 {
		c.Compile.Workers = defaultWorkers()
	}
}

func (c *Config) normalizeFFmpeg() {
	c.FFmpeg.Binary = strings.TrimSpace(c.FFmpeg.Binary)
	if c.FFmpeg.Binary == "" || c.FFmpeg.Binary == defaultFFmpegBinary {
		if value, ok := os.LookupEnv("BILIMUX_FFMPEG"); ok && strings.TrimSpace(value) != "" {
			c.FFmpeg.Binary = strings.TrimSpace(value)
		}
	}
	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = defaultFFmpegBinary
	}
	c.FFmpeg.LogLevel = strings.ToLower(strings.TrimSpace(c.FFmpeg.LogLevel))
	if c.FFmpeg.LogLevel == "" {
		c.FFmpeg.LogLevel = defaultFFmpegLogLevel
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
