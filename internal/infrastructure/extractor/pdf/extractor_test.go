package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// writeCorruptPDF builds a file with a valid header, xref table and trailer
// whose page-tree object slot holds a bare keyword. It opens cleanly but the
// object parser chokes the moment the page tree is resolved.
func writeCorruptPDF(t *testing.T) string {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	catalogOffset := buf.Len()
	buf.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	pagesOffset := buf.Len()
	buf.WriteString("2 0 obj\ngarbage\nendobj\n")
	xrefOffset := buf.Len()
	buf.WriteString("xref\n0 3\n")
	buf.WriteString("0000000000 65535 f \n")
	fmt.Fprintf(&buf, "%010d 00000 n \n", catalogOffset)
	fmt.Fprintf(&buf, "%010d 00000 n \n", pagesOffset)
	buf.WriteString("trailer\n<< /Size 3 /Root 1 0 R >>\n")
	fmt.Fprintf(&buf, "startxref\n%d\n%%%%EOF\n", xrefOffset)

	path := filepath.Join(t.TempDir(), "corrupt.pdf")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write corrupt pdf: %v", err)
	}
	return path
}

func TestExtractCorruptObjectDataReturnsError(t *testing.T) {
	path := writeCorruptPDF(t)

	text, err := NewExtractor().Extract(context.Background(), path)
	if err == nil {
		t.Fatalf("expected error for corrupt object data, got text %q", text)
	}
	if text != "" {
		t.Fatalf("expected empty text on failure, got %q", text)
	}
}

func TestExtractUnopenableFileReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a.pdf")
	if err := os.WriteFile(path, []byte("plain bytes, no pdf header"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := NewExtractor().Extract(context.Background(), path); err == nil {
		t.Fatal("expected error for a file without a pdf header")
	}
}
