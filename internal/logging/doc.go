// Package logging assembles structured slog loggers used across bilimux.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code tags log lines
// with the run id, season, episode, and stage without threading them by hand.
// The console handler lifts season and episode into a readable subject prefix.
package logging
