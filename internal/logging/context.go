package logging

import (
	"context"
	"log/slog"

	"bilimux/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID correlates every line emitted by one CLI invocation.
	FieldRunID = "run_id"
	// FieldSeason is the season title being compiled.
	FieldSeason = "season"
	// FieldEpisode is the episode label (EP01, SP1, ...).
	FieldEpisode = "episode"
	// FieldStage is the pipeline stage name.
	FieldStage = "stage"
	// FieldEventType classifies warnings for filtering.
	FieldEventType = "event_type"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 4)
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if season, ok := services.SeasonFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldSeason, season))
	}
	if episode, ok := services.EpisodeFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldEpisode, episode))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldStage, stage))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(toArgs(fields)...)
}
