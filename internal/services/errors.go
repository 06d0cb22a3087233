package services

import (
	"errors"
	"fmt"
	"strings"
)

// Category markers. Every pipeline failure wraps exactly one of these so the
// presentation layer can classify it without knowing the concrete package.
var (
	ErrMetadata      = errors.New("metadata error")
	ErrSubtitle      = errors.New("subtitle error")
	ErrMux           = errors.New("mux error")
	ErrPackaging     = errors.New("packaging error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of
// the exported sentinel errors above or a package sentinel that wraps one.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Category returns a short label for the marker wrapped by err.
func Category(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMetadata):
		return "metadata"
	case errors.Is(err, ErrSubtitle):
		return "subtitle"
	case errors.Is(err, ErrMux):
		return "mux"
	case errors.Is(err, ErrPackaging):
		return "packaging"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrValidation):
		return "validation"
	default:
		return "unknown"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
