package docx

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"
)

const minimalDocument = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>اولین پاراگراف</w:t></w:r></w:p>
    <w:p><w:r><w:t>second </w:t></w:r><w:r><w:t>paragraph</w:t></w:r></w:p>
    <w:p/>
    <w:p><w:r><w:t>سومی</w:t></w:r></w:p>
  </w:body>
</w:document>`

func writeTestDocx(t *testing.T, documentXML string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create docx: %v", err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

func TestExtractJoinsParagraphsInOrder(t *testing.T) {
	path := writeTestDocx(t, minimalDocument)

	got, err := NewExtractor().Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	want := "اولین پاراگراف\nsecond paragraph\n\nسومی"
	if got != want {
		t.Fatalf("Extract() = %q, want %q", got, want)
	}
}

func TestExtractFailsOnMissingDocumentXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create docx: %v", err)
	}
	zw := zip.NewWriter(f)
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	_ = f.Close()

	if _, err := NewExtractor().Extract(context.Background(), path); err == nil {
		t.Fatalf("expected error for docx without word/document.xml")
	}
}

func TestExtractFailsOnCorruptArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	if err := os.WriteFile(path, []byte("not a zip"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := NewExtractor().Extract(context.Background(), path); err == nil {
		t.Fatalf("expected error for corrupt archive")
	}
}
