// Package image runs OCR on raster images through the tesseract CLI.
package image

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultLanguages is the bilingual recognition mode used when none is
// configured: local script plus Latin.
const DefaultLanguages = "fas+eng"

type Extractor struct {
	languages string
}

func NewExtractor(languages string) *Extractor {
	if strings.TrimSpace(languages) == "" {
		languages = DefaultLanguages
	}
	return &Extractor{languages: languages}
}

// Extract OCRs the image assuming a single uniform block of text (psm 6).
// Output is best effort and never guaranteed accurate.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, "tesseract", path, "stdout", "-l", e.languages, "--psm", "6")

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			return "", fmt.Errorf("tesseract: %w", err)
		}
		return "", fmt.Errorf("tesseract: %w: %s", err, detail)
	}
	return out.String(), nil
}
