package config

import "runtime"

const (
	defaultConfigPath     = "~/.config/bilimux/config.toml"
	projectConfigName     = "bilimux.toml"
	defaultLanguage       = "en"
	defaultFFmpegBinary   = "ffmpeg"
	defaultFFmpegLogLevel = "error"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Compile: Compile{
			Language: defaultLanguage,
			Workers:  defaultWorkers(),
		},
		FFmpeg: FFmpeg{
			Binary:   defaultFFmpegBinary,
			LogLevel: defaultFFmpegLogLevel,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultWorkers() int {
	if n := runtime.NumCPU(); n > 0 {
		return n
	}
	return 1
}
