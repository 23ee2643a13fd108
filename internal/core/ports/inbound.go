package ports

import (
	"context"

	"github.com/arashpr/cheatbot/internal/core/domain"
)

// SessionController drives the document-to-context pipeline and answer routing.
type SessionController interface {
	// IngestFile extracts text from a downloaded file and, when the result
	// clears the usability threshold, replaces the user's session with it.
	IngestFile(ctx context.Context, user domain.UserID, localPath string, declaredSize int64) error

	// Ask answers a question, grounded in the user's session text when one
	// exists, open-domain otherwise.
	Ask(ctx context.Context, user domain.UserID, question string) (string, error)

	// Forget drops the user's session. No-op when none exists.
	Forget(user domain.UserID)

	// HasSession reports whether the user currently holds a document.
	HasSession(user domain.UserID) bool
}
