package localfs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveUniqueWritesFile(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	path, err := s.SaveUnique(context.Background(), "گزارش.pdf", strings.NewReader("content"))
	if err != nil {
		t.Fatalf("SaveUnique() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "content" {
		t.Fatalf("saved content = %q", data)
	}
	if !strings.HasSuffix(path, "گزارش.pdf") {
		t.Fatalf("persian filename must survive sanitization: %q", path)
	}
}

func TestSaveUniqueAvoidsCollisions(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	a, err := s.SaveUnique(context.Background(), "same.txt", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("SaveUnique() error = %v", err)
	}
	b, err := s.SaveUnique(context.Background(), "same.txt", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("SaveUnique() error = %v", err)
	}
	if a == b {
		t.Fatalf("two saves of the same name must not collide: %q", a)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"report final.pdf": "report_final.pdf",
		"../../etc/passwd": "passwd",
		"":                 "document.bin",
		"عکس.jpg":          "عکس.jpg",
		"a|b<c>.txt":       "a_b_c_.txt",
	}
	for in, want := range cases {
		if got := sanitizeFilename(in); got != want {
			t.Fatalf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRemoveIsTolerant(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	path, err := s.SaveUnique(context.Background(), "x.txt", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("SaveUnique() error = %v", err)
	}
	if err := s.Remove(path); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("artifact must be gone after Remove")
	}
	if err := s.Remove(filepath.Join(t.TempDir(), "never-existed")); err != nil {
		t.Fatalf("Remove() of missing file must be a no-op, got %v", err)
	}
}
