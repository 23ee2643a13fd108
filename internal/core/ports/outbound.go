package ports

import (
	"context"

	"github.com/arashpr/cheatbot/internal/core/domain"
)

// SessionStore holds at most one text blob per user. Last write wins.
type SessionStore interface {
	Set(user domain.UserID, text string)
	Get(user domain.UserID) (string, bool)
	Clear(user domain.UserID)
}

// TextExtractor converts a local file into normalized plain text.
// Unknown formats yield empty text, not an error.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// AnswerGenerator invokes the generation backend with a finished prompt and
// returns its trimmed textual result.
type AnswerGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TaskRunner offloads a blocking operation to a bounded pool with a per-task
// deadline so extraction or generation can never pin a slot forever.
type TaskRunner interface {
	Run(ctx context.Context, operation string, fn func(context.Context) error) error
}
