package domain

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	// MaxContextChars caps how many characters of session text a grounded
	// prompt may embed verbatim.
	MaxContextChars = 15000

	// MaxFileMB is the declared-size gate for incoming files. The check is
	// advisory: it trusts the size reported by the transport.
	MaxFileMB = 20

	// MinUsableChars is the usability threshold: extractions shorter than
	// this are treated as failed and never replace an existing session.
	MinUsableChars = 50
)

// UserID is the opaque chat-platform identity a session is keyed by.
type UserID int64

// DocumentKind tags an incoming file with its declared format.
type DocumentKind string

const (
	KindPDF       DocumentKind = "pdf"
	KindImage     DocumentKind = "image"
	KindWordDoc   DocumentKind = "docx"
	KindPlainText DocumentKind = "txt"
	KindUnknown   DocumentKind = "unknown"
)

// KindOfPath maps a file extension to its document kind.
func KindOfPath(path string) DocumentKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return KindPDF
	case ".png", ".jpg", ".jpeg", ".webp":
		return KindImage
	case ".docx":
		return KindWordDoc
	case ".txt":
		return KindPlainText
	default:
		return KindUnknown
	}
}

// FileTooLarge reports whether a declared byte size exceeds the gate.
func FileTooLarge(sizeBytes int64) bool {
	return sizeBytes > MaxFileMB*1024*1024
}

// UsableText reports whether extracted text clears the usability threshold.
// Length is counted in characters, not bytes.
func UsableText(text string) bool {
	return utf8.RuneCountInString(text) >= MinUsableChars
}

// TruncateContext returns at most MaxContextChars characters of text.
func TruncateContext(text string) string {
	if utf8.RuneCountInString(text) <= MaxContextChars {
		return text
	}
	return string([]rune(text)[:MaxContextChars])
}
