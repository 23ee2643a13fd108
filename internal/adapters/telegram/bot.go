package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"
)

const (
	defaultAPIBase = "https://api.telegram.org"

	// maxMessageLength is Telegram's hard limit on outbound message text.
	maxMessageLength = 4096

	longPollSeconds = 30
)

// Bot is a thin client for the Telegram Bot API over plain HTTP.
type Bot struct {
	token       string
	apiBase     string
	httpClient  *http.Client
	pollBackoff *rate.Limiter
}

func NewBot(token string) *Bot {
	return &Bot{
		token:   token,
		apiBase: defaultAPIBase,
		// Long poll requests stay open up to longPollSeconds; leave headroom.
		httpClient: &http.Client{Timeout: (longPollSeconds + 15) * time.Second},
		// Throttles retries when getUpdates keeps failing.
		pollBackoff: rate.NewLimiter(rate.Every(3*time.Second), 1),
	}
}

// WithAPIBase overrides the API host, for tests.
func (b *Bot) WithAPIBase(apiBase string) *Bot {
	b.apiBase = strings.TrimRight(apiBase, "/")
	return b
}

// Updates long-polls getUpdates and streams inbound updates until ctx ends.
// The channel is closed on shutdown.
func (b *Bot) Updates(ctx context.Context) <-chan Update {
	ch := make(chan Update)
	go b.pollLoop(ctx, ch)
	return ch
}

func (b *Bot) pollLoop(ctx context.Context, ch chan<- Update) {
	defer close(ch)
	var offset int64

	for ctx.Err() == nil {
		updates, err := b.getUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			slog.Warn("telegram_poll_failed", "error", err)
			if waitErr := b.pollBackoff.Wait(ctx); waitErr != nil {
				return
			}
			continue
		}

		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			if u.Message == nil {
				continue
			}
			select {
			case ch <- u:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (b *Bot) getUpdates(ctx context.Context, offset int64) ([]Update, error) {
	body := map[string]any{
		"offset":          offset,
		"timeout":         longPollSeconds,
		"allowed_updates": []string{"message"},
	}
	var updates []Update
	if err := b.call(ctx, "getUpdates", body, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// SendMessage delivers text to a chat, splitting anything over Telegram's
// 4096-char limit into consecutive messages.
func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string) error {
	return b.send(ctx, chatID, text, nil)
}

// SendMessageWithKeyboard delivers text together with the reply keyboard.
func (b *Bot) SendMessageWithKeyboard(ctx context.Context, chatID int64, text string, keyboard ReplyKeyboardMarkup) error {
	return b.send(ctx, chatID, text, &keyboard)
}

func (b *Bot) send(ctx context.Context, chatID int64, text string, keyboard *ReplyKeyboardMarkup) error {
	for _, chunk := range splitMessage(text) {
		body := map[string]any{
			"chat_id": chatID,
			"text":    chunk,
		}
		if keyboard != nil {
			body["reply_markup"] = keyboard
		}
		if err := b.call(ctx, "sendMessage", body, nil); err != nil {
			return err
		}
	}
	return nil
}

// DownloadFile resolves a file_id and streams its content. The caller owns
// the returned reader. The second result is the declared file size.
func (b *Bot) DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, int64, error) {
	var file File
	if err := b.call(ctx, "getFile", map[string]any{"file_id": fileID}, &file); err != nil {
		return nil, 0, err
	}
	if file.FilePath == "" {
		return nil, 0, fmt.Errorf("telegram: empty file_path for file_id %s", fileID)
	}

	url := fmt.Sprintf("%s/file/bot%s/%s", b.apiBase, b.token, file.FilePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("telegram: create download request: %w", err)
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("telegram: download file: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		resp.Body.Close()
		return nil, 0, fmt.Errorf("telegram: download file HTTP %d: %s", resp.StatusCode, string(raw))
	}
	return resp.Body, file.FileSize, nil
}

// call posts JSON to one Bot API method and decodes the result envelope.
func (b *Bot) call(ctx context.Context, method string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("telegram: marshal %s request: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", b.apiBase, b.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: %s request: %w", method, err)
	}
	defer resp.Body.Close()

	var envelope struct {
		OK          bool            `json:"ok"`
		ErrorCode   int             `json:"error_code"`
		Description string          `json:"description"`
		Result      json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("telegram: decode %s response: %w", method, err)
	}
	if !envelope.OK {
		return fmt.Errorf("telegram: %s failed: %d %s", method, envelope.ErrorCode, envelope.Description)
	}
	if out != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, out); err != nil {
			return fmt.Errorf("telegram: decode %s result: %w", method, err)
		}
	}
	return nil
}

// splitMessage cuts text into chunks under the outbound limit, preferring
// newline boundaries. Cuts never land inside a multi-byte rune: the API
// rejects messages that are not valid UTF-8.
func splitMessage(text string) []string {
	if len(text) <= maxMessageLength {
		return []string{text}
	}

	var chunks []string
	remaining := text
	for len(remaining) > maxMessageLength {
		window := remaining[:maxMessageLength]
		cut := strings.LastIndex(window, "\n")
		if cut <= 0 {
			cut = maxMessageLength
			for cut > 0 && !utf8.RuneStart(remaining[cut]) {
				cut--
			}
		} else {
			cut++
		}
		chunks = append(chunks, remaining[:cut])
		remaining = remaining[cut:]
	}
	if len(remaining) > 0 {
		chunks = append(chunks, remaining)
	}
	return chunks
}
