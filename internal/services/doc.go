// Package services defines shared utilities consumed by the pipeline stages.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers, season and episode labels,
//     and stage names for logging.
//   - Category markers plus the Wrap helper that give every failure a
//     consistent message shape and a classification the CLI can render.
//
// Use these helpers when wiring new stage logic so error handling and
// observability stay uniform across the pipeline.
package services
