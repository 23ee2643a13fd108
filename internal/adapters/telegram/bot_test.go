package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"
)

func TestSendMessageSplitsLongText(t *testing.T) {
	var mu sync.Mutex
	var chunks []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/sendMessage") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body struct {
			ChatID int64  `json:"chat_id"`
			Text   string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		mu.Lock()
		chunks = append(chunks, body.Text)
		mu.Unlock()
		fmt.Fprint(w, `{"ok":true,"result":{}}`)
	}))
	defer srv.Close()

	bot := NewBot("token").WithAPIBase(srv.URL)
	long := strings.Repeat("a", maxMessageLength) + "tail"
	if err := bot.SendMessage(context.Background(), 42, long); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0]+chunks[1] != long {
		t.Fatal("chunks must reassemble into the original text")
	}
	if len(chunks[0]) > maxMessageLength {
		t.Fatalf("chunk exceeds limit: %d", len(chunks[0]))
	}
}

func TestSplitMessagePrefersNewlineBoundary(t *testing.T) {
	text := strings.Repeat("x", 4000) + "\n" + strings.Repeat("y", 500)
	chunks := splitMessage(text)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], "\n") {
		t.Fatal("first chunk should end at the newline boundary")
	}
	if chunks[1] != strings.Repeat("y", 500) {
		t.Fatal("second chunk should hold the trailing line")
	}
}

func TestSplitMessageKeepsRuneBoundaries(t *testing.T) {
	// One leading ASCII byte pushes every later rune off a 4096-byte
	// alignment, so a byte-indexed cut would land mid-rune.
	text := "a" + strings.Repeat("ن", 5000)
	chunks := splitMessage(text)

	var rejoined strings.Builder
	for i, chunk := range chunks {
		if !utf8.ValidString(chunk) {
			t.Fatalf("chunk %d is not valid UTF-8", i)
		}
		if len(chunk) > maxMessageLength {
			t.Fatalf("chunk %d exceeds limit: %d bytes", i, len(chunk))
		}
		rejoined.WriteString(chunk)
	}
	if rejoined.String() != text {
		t.Fatal("chunks must reassemble into the original text")
	}
}

func TestCallReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked"}`)
	}))
	defer srv.Close()

	bot := NewBot("token").WithAPIBase(srv.URL)
	err := bot.SendMessage(context.Background(), 42, "hi")
	if err == nil {
		t.Fatal("expected API error")
	}
	if !strings.Contains(err.Error(), "Forbidden: bot was blocked") {
		t.Fatalf("error must carry the API description, got %v", err)
	}
}

func TestDownloadFileTwoStep(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getFile"):
			fmt.Fprint(w, `{"ok":true,"result":{"file_id":"f1","file_path":"documents/a.pdf","file_size":12}}`)
		case strings.Contains(r.URL.Path, "/file/bottoken/documents/a.pdf"):
			fmt.Fprint(w, "file content")
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	bot := NewBot("token").WithAPIBase(srv.URL)
	body, size, err := bot.DownloadFile(context.Background(), "f1")
	if err != nil {
		t.Fatalf("DownloadFile: %v", err)
	}
	defer body.Close()

	if size != 12 {
		t.Fatalf("expected declared size 12, got %d", size)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(raw) != "file content" {
		t.Fatalf("unexpected content %q", raw)
	}
}

func TestDownloadFileEmptyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok":true,"result":{"file_id":"f1"}}`)
	}))
	defer srv.Close()

	bot := NewBot("token").WithAPIBase(srv.URL)
	if _, _, err := bot.DownloadFile(context.Background(), "f1"); err == nil {
		t.Fatal("expected error for missing file_path")
	}
}

func TestUpdatesAdvancesOffsetAndSkipsNonMessages(t *testing.T) {
	var mu sync.Mutex
	var offsets []int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Offset int64 `json:"offset"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		offsets = append(offsets, body.Offset)
		first := len(offsets) == 1
		mu.Unlock()

		if first {
			fmt.Fprint(w, `{"ok":true,"result":[
				{"update_id":10,"message":{"message_id":1,"from":{"id":7},"chat":{"id":7},"text":"hi"}},
				{"update_id":11}
			]}`)
			return
		}
		fmt.Fprint(w, `{"ok":true,"result":[]}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bot := NewBot("token").WithAPIBase(srv.URL)
	updates := bot.Updates(ctx)

	select {
	case u := <-updates:
		if u.UpdateID != 10 || u.Message == nil || u.Message.Text != "hi" {
			t.Fatalf("unexpected update %+v", u)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no update received")
	}

	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		n := len(offsets)
		mu.Unlock()
		if n >= 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("second poll never happened")
		case <-time.After(10 * time.Millisecond):
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if offsets[0] != 0 {
		t.Fatalf("first poll must start at offset 0, got %d", offsets[0])
	}
	// Offset moves past the highest seen update, including non-message ones.
	if offsets[1] != 12 {
		t.Fatalf("expected offset 12 after update_id 11, got %d", offsets[1])
	}
}
