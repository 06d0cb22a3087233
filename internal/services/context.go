package services

import "context"

type contextKey string

const (
	runIDKey   contextKey = "run_id"
	seasonKey  contextKey = "season"
	episodeKey contextKey = "episode"
	stageKey   contextKey = "stage"
)

// WithRunID annotates context with the correlation identifier of one CLI run.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithSeason annotates context with the season title being compiled.
func WithSeason(ctx context.Context, season string) context.Context {
	if season == "" {
		return ctx
	}
	return context.WithValue(ctx, seasonKey, season)
}

// SeasonFromContext returns the season title if present.
func SeasonFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(seasonKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithEpisode annotates context with the episode label (EP01, OVA 1, ...).
func WithEpisode(ctx context.Context, episode string) context.Context {
	if episode == "" {
		return ctx
	}
	return context.WithValue(ctx, episodeKey, episode)
}

// EpisodeFromContext returns the episode label if present.
func EpisodeFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(episodeKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(stageKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
