package telegram

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/arashpr/cheatbot/internal/core/domain"
	"github.com/arashpr/cheatbot/internal/core/ports"
	"github.com/arashpr/cheatbot/internal/observability/metrics"
)

// messenger is the outbound slice of the bot client the handler needs.
// Split out so tests can capture sent messages without HTTP.
type messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendMessageWithKeyboard(ctx context.Context, chatID int64, text string, keyboard ReplyKeyboardMarkup) error
}

type fileDownloader interface {
	DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, int64, error)
}

// artifactStore holds a downloaded file for the duration of one extraction.
type artifactStore interface {
	SaveUnique(ctx context.Context, originalName string, data io.Reader) (string, error)
	Remove(path string) error
}

// Handler routes inbound updates to the session controller and replies with
// the Persian UI texts. Updates for the same user run in arrival order on a
// dedicated queue; different users proceed independently.
type Handler struct {
	controller ports.SessionController
	bot        messenger
	files      fileDownloader
	storage    artifactStore
	metrics    *metrics.BotMetrics
	logger     *slog.Logger

	mu     sync.Mutex
	queues map[int64]chan Update
	wg     sync.WaitGroup
}

const userQueueDepth = 16

func NewHandler(
	controller ports.SessionController,
	bot messenger,
	files fileDownloader,
	storage artifactStore,
	botMetrics *metrics.BotMetrics,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		controller: controller,
		bot:        bot,
		files:      files,
		storage:    storage,
		metrics:    botMetrics,
		logger:     logger,
		queues:     make(map[int64]chan Update),
	}
}

// Run consumes updates until the stream closes or ctx ends, then waits for
// per-user queues to drain.
func (h *Handler) Run(ctx context.Context, updates <-chan Update) {
	for {
		select {
		case u, ok := <-updates:
			if !ok {
				h.shutdown()
				return
			}
			h.dispatch(ctx, u)
		case <-ctx.Done():
			h.shutdown()
			return
		}
	}
}

// dispatch hands the update to the sender's queue, creating it on first
// contact. A full queue drops the update rather than stalling other users.
func (h *Handler) dispatch(ctx context.Context, u Update) {
	if u.Message == nil || u.Message.From == nil {
		return
	}
	userID := u.Message.From.ID

	h.mu.Lock()
	queue, ok := h.queues[userID]
	if !ok {
		queue = make(chan Update, userQueueDepth)
		h.queues[userID] = queue
		h.wg.Add(1)
		go h.userLoop(ctx, queue)
	}
	h.mu.Unlock()

	select {
	case queue <- u:
	default:
		h.logger.Warn("update_dropped", "user_id", userID)
	}
}

func (h *Handler) userLoop(ctx context.Context, queue <-chan Update) {
	defer h.wg.Done()
	for {
		select {
		case u, ok := <-queue:
			if !ok {
				return
			}
			h.handle(ctx, u)
		case <-ctx.Done():
			return
		}
	}
}

func (h *Handler) shutdown() {
	h.mu.Lock()
	for _, queue := range h.queues {
		close(queue)
	}
	h.queues = make(map[int64]chan Update)
	h.mu.Unlock()
	h.wg.Wait()
}

func (h *Handler) handle(ctx context.Context, u Update) {
	msg := u.Message
	userID := domain.UserID(msg.From.ID)
	chatID := msg.Chat.ID

	switch {
	case msg.Document != nil:
		h.handleDocument(ctx, userID, chatID, msg.Document)
	case len(msg.Photo) > 0:
		h.handlePhoto(ctx, userID, chatID, msg.Photo)
	case msg.Text != "":
		h.handleText(ctx, userID, chatID, msg.Text)
	}
}

func (h *Handler) handleText(ctx context.Context, userID domain.UserID, chatID int64, text string) {
	text = strings.TrimSpace(text)
	switch text {
	case "":
		// Whitespace-only messages carry no question.
	case "/start":
		h.reply(ctx, chatID, msgGreeting, true)
	case buttonStart:
		h.reply(ctx, chatID, msgSendFile, false)
	case buttonForget:
		h.controller.Forget(userID)
		h.reply(ctx, chatID, msgForgotten, false)
	default:
		h.handleQuestion(ctx, userID, chatID, text)
	}
}

func (h *Handler) handleQuestion(ctx context.Context, userID domain.UserID, chatID int64, question string) {
	h.reply(ctx, chatID, msgPreparing, false)

	mode := "open"
	if h.controller.HasSession(userID) {
		mode = "grounded"
	}

	start := time.Now()
	answer, err := h.controller.Ask(ctx, userID, question)
	h.metrics.ObserveAnswer(mode, time.Since(start), err)

	switch {
	case err == nil:
		h.reply(ctx, chatID, answer, false)
	case domain.IsKind(err, domain.ErrEmptyAnswer):
		h.reply(ctx, chatID, msgNoAnswer, false)
	default:
		h.logger.Error("answer_failed", "user_id", int64(userID), "error", err)
		h.reply(ctx, chatID, msgBackendError, false)
	}
}

func (h *Handler) handleDocument(ctx context.Context, userID domain.UserID, chatID int64, doc *Document) {
	if domain.FileTooLarge(doc.FileSize) {
		h.reply(ctx, chatID, msgFileTooLarge, false)
		return
	}
	h.reply(ctx, chatID, msgExtracting, false)
	h.ingest(ctx, userID, chatID, doc.FileID, documentFilename(doc), msgNoUsableText)
}

// handlePhoto takes the largest rendition, which Telegram lists last.
func (h *Handler) handlePhoto(ctx context.Context, userID domain.UserID, chatID int64, photos []PhotoSize) {
	largest := photos[len(photos)-1]
	if domain.FileTooLarge(largest.FileSize) {
		h.reply(ctx, chatID, msgFileTooLarge, false)
		return
	}
	h.reply(ctx, chatID, msgRunningOCR, false)
	h.ingest(ctx, userID, chatID, largest.FileID, "photo.jpg", msgNoUsableTextPhoto)
}

// ingest downloads the file, runs extraction through the controller and maps
// failure kinds to user messages. The on-disk artifact lives only for the
// duration of this call.
func (h *Handler) ingest(ctx context.Context, userID domain.UserID, chatID int64, fileID, filename, noTextMsg string) {
	body, declaredSize, err := h.files.DownloadFile(ctx, fileID)
	if err != nil {
		h.logger.Error("download_failed", "user_id", int64(userID), "error", err)
		h.reply(ctx, chatID, noTextMsg, false)
		return
	}
	defer body.Close()

	if domain.FileTooLarge(declaredSize) {
		h.reply(ctx, chatID, msgFileTooLarge, false)
		return
	}

	path, err := h.storage.SaveUnique(ctx, filename, body)
	if err != nil {
		h.logger.Error("save_artifact_failed", "user_id", int64(userID), "error", err)
		h.reply(ctx, chatID, noTextMsg, false)
		return
	}
	defer func() {
		if removeErr := h.storage.Remove(path); removeErr != nil {
			h.logger.Warn("remove_artifact_failed", "path", path, "error", removeErr)
		}
	}()

	format := string(domain.KindOfPath(path))
	start := time.Now()
	err = h.controller.IngestFile(ctx, userID, path, declaredSize)
	h.metrics.ObserveExtraction(format, time.Since(start), err)

	switch {
	case err == nil:
		h.reply(ctx, chatID, msgExtracted, false)
	case domain.IsKind(err, domain.ErrOversizedInput):
		h.reply(ctx, chatID, msgFileTooLarge, false)
	default:
		h.reply(ctx, chatID, noTextMsg, false)
	}
}

func (h *Handler) reply(ctx context.Context, chatID int64, text string, withKeyboard bool) {
	var err error
	if withKeyboard {
		err = h.bot.SendMessageWithKeyboard(ctx, chatID, text, mainKeyboard)
	} else {
		err = h.bot.SendMessage(ctx, chatID, text)
	}
	if err != nil {
		h.logger.Error("send_failed", "chat_id", chatID, "error", err)
	}
}

// documentFilename falls back to a mime-derived name when the upload carries
// no filename, so kind detection still sees an extension.
func documentFilename(doc *Document) string {
	if doc.FileName != "" {
		return doc.FileName
	}
	switch doc.MimeType {
	case "application/pdf":
		return "document.pdf"
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return "document.docx"
	case "text/plain":
		return "document.txt"
	case "image/png":
		return "document.png"
	case "image/jpeg", "image/jpg":
		return "document.jpg"
	default:
		return "document.bin"
	}
}
