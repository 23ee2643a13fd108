package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/arashpr/cheatbot/internal/core/domain"
	"github.com/arashpr/cheatbot/internal/core/ports"
)

// SessionController owns the per-user document state machine: a successful
// extraction moves the user to "has document", forget moves back, and a
// question never changes state.
type SessionController struct {
	store     ports.SessionStore
	extractor ports.TextExtractor
	generator ports.AnswerGenerator
	runner    ports.TaskRunner

	mu        sync.Mutex
	userLocks map[domain.UserID]*sync.Mutex
}

func NewSessionController(
	store ports.SessionStore,
	extractor ports.TextExtractor,
	generator ports.AnswerGenerator,
	runner ports.TaskRunner,
) *SessionController {
	return &SessionController{
		store:     store,
		extractor: extractor,
		generator: generator,
		runner:    runner,
		userLocks: make(map[domain.UserID]*sync.Mutex),
	}
}

// IngestFile runs extraction for a downloaded file and replaces the user's
// session when the result clears the usability threshold. A failed or
// too-short extraction leaves any existing session untouched.
func (c *SessionController) IngestFile(ctx context.Context, user domain.UserID, localPath string, declaredSize int64) error {
	unlock := c.lockUser(user)
	defer unlock()

	if domain.FileTooLarge(declaredSize) {
		return domain.WrapError(domain.ErrOversizedInput, "ingest file",
			errors.New("declared size over limit"))
	}

	var text string
	err := c.runner.Run(ctx, "extract_text", func(taskCtx context.Context) error {
		var extractErr error
		text, extractErr = c.extractor.Extract(taskCtx, localPath)
		return extractErr
	})
	if err != nil {
		slog.Error("extraction_failed", "user_id", int64(user), "path", localPath, "error", err)
		return domain.WrapError(domain.ErrUnsupportedInput, "extract text", err)
	}

	if !domain.UsableText(text) {
		return domain.WrapError(domain.ErrUnsupportedInput, "extract text",
			errors.New("extracted text below usability threshold"))
	}

	c.store.Set(user, text)
	slog.Info("session_replaced", "user_id", int64(user), "chars", utf8.RuneCountInString(text))
	return nil
}

// Ask answers the question, grounded in the session text when the user holds
// a document. An empty backend result is reported as ErrEmptyAnswer, which
// is a sentinel rather than a hard failure.
func (c *SessionController) Ask(ctx context.Context, user domain.UserID, question string) (string, error) {
	unlock := c.lockUser(user)
	defer unlock()

	question = strings.TrimSpace(question)

	var prompt string
	if text, ok := c.store.Get(user); ok {
		prompt = BuildGroundedPrompt(question, domain.TruncateContext(text))
	} else {
		prompt = BuildOpenPrompt(question)
	}

	var answer string
	err := c.runner.Run(ctx, "generate_answer", func(taskCtx context.Context) error {
		var genErr error
		answer, genErr = c.generator.Generate(taskCtx, prompt)
		return genErr
	})
	if err != nil {
		return "", err
	}
	if answer == "" {
		return "", domain.ErrEmptyAnswer
	}
	return answer, nil
}

// Forget drops the user's session. No-op when none exists.
func (c *SessionController) Forget(user domain.UserID) {
	unlock := c.lockUser(user)
	defer unlock()

	c.store.Clear(user)
	slog.Info("session_cleared", "user_id", int64(user))
}

func (c *SessionController) HasSession(user domain.UserID) bool {
	_, ok := c.store.Get(user)
	return ok
}

// lockUser serializes events for one user; events of different users stay
// independent.
func (c *SessionController) lockUser(user domain.UserID) func() {
	c.mu.Lock()
	lock, ok := c.userLocks[user]
	if !ok {
		lock = &sync.Mutex{}
		c.userLocks[user] = lock
	}
	c.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
