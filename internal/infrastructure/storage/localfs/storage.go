// Package localfs stores downloaded file artifacts under a local directory.
// Artifacts are scoped to one extraction: callers remove them when done.
package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Storage struct {
	basePath string
}

func New(basePath string) (*Storage, error) {
	if basePath == "" {
		basePath = "./downloads"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create download dir: %w", err)
	}
	return &Storage{basePath: basePath}, nil
}

// SaveUnique writes data to a collision-free path derived from the original
// filename and returns that path.
func (s *Storage) SaveUnique(_ context.Context, originalName string, data io.Reader) (string, error) {
	name := sanitizeFilename(originalName)
	path := filepath.Join(s.basePath, fmt.Sprintf("%s_%s", uuid.NewString()[:10], name))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

// Remove deletes an artifact. Missing files are not an error.
func (s *Storage) Remove(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove artifact: %w", err)
	}
	return nil
}

// sanitizeFilename keeps ASCII word characters and Arabic-script letters so
// Persian filenames stay readable on disk.
func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		case r >= 0x0600 && r <= 0x06FF:
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." {
		return "document.bin"
	}
	return base
}
