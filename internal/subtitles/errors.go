package subtitles

import (
	"fmt"

	"bilimux/internal/services"
)

var (
	// ErrDirectoryEmpty indicates a missing language directory or one without a subtitle file.
	ErrDirectoryEmpty = fmt.Errorf("%w: no subtitle file", services.ErrSubtitle)
	// ErrAmbiguousSubtitle indicates a language directory holding more than one candidate file.
	ErrAmbiguousSubtitle = fmt.Errorf("%w: ambiguous subtitle", services.ErrSubtitle)
	// ErrUnknownFormat indicates a subtitle extension the pipeline cannot read.
	ErrUnknownFormat = fmt.Errorf("%w: unknown format", services.ErrSubtitle)
	// ErrCodec indicates a subtitle that could not be decoded or encoded.
	ErrCodec = fmt.Errorf("%w: codec failure", services.ErrSubtitle)
)
