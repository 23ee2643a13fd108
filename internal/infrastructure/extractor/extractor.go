// Package extractor dispatches a downloaded file to the format-specific
// extractor registered for its kind and normalizes the result.
package extractor

import (
	"context"
	"fmt"

	"github.com/arashpr/cheatbot/internal/core/domain"
	"github.com/arashpr/cheatbot/internal/infrastructure/textproc"
)

// FormatExtractor converts one document format into raw text.
type FormatExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Registry selects a FormatExtractor by document kind. Adding a format is a
// registration, not a new branch.
type Registry struct {
	byKind map[domain.DocumentKind]FormatExtractor
}

func NewRegistry() *Registry {
	return &Registry{byKind: make(map[domain.DocumentKind]FormatExtractor)}
}

func (r *Registry) Register(kind domain.DocumentKind, fe FormatExtractor) {
	r.byKind[kind] = fe
}

// Extract resolves the file's kind, runs the matching extractor, and returns
// normalized text. Unknown kinds yield empty text so the caller's usability
// check rejects them; extractor failures propagate as errors.
func (r *Registry) Extract(ctx context.Context, path string) (string, error) {
	kind := domain.KindOfPath(path)
	fe, ok := r.byKind[kind]
	if !ok {
		return "", nil
	}

	text, err := fe.Extract(ctx, path)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", kind, err)
	}
	return textproc.Normalize(text), nil
}
