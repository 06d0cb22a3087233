// Package config loads, normalizes, and validates bilimux configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the BILIMUX_FFMPEG environment
// fallback. Command-line flags are applied on top of the loaded Config by the
// CLI, so every run sees one consistent set of compile options.
package config
