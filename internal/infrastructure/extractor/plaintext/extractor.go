// Package plaintext reads .txt files with a best-effort decode: byte
// sequences that are not valid UTF-8 are dropped rather than failing the
// extraction.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"strings"
)

type Extractor struct{}

func NewExtractor() *Extractor { return &Extractor{} }

func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read text file: %w", err)
	}
	return strings.ToValidUTF8(string(raw), ""), nil
}
