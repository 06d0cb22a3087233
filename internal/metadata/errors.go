package metadata

import (
	"fmt"

	"bilimux/internal/services"
)

var (
	// ErrMissingDescriptor indicates an episode bundle without entry.json.
	ErrMissingDescriptor = fmt.Errorf("%w: missing descriptor", services.ErrMetadata)
	// ErrInvalidDescriptor indicates an unreadable, malformed, or incomplete entry.json.
	ErrInvalidDescriptor = fmt.Errorf("%w: invalid descriptor", services.ErrMetadata)
	// ErrEmptySeason indicates a season directory without any episode bundle.
	ErrEmptySeason = fmt.Errorf("%w: empty season", services.ErrMetadata)
	// ErrMissingStream indicates an episode bundle lacking its video or audio stream.
	ErrMissingStream = fmt.Errorf("%w: missing stream", services.ErrMetadata)
)
