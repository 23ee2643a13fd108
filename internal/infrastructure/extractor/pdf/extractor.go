// Package pdf extracts text from PDF files with ledongthuc/pdf (pure Go).
package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

type Extractor struct{}

func NewExtractor() *Extractor { return &Extractor{} }

// Extract concatenates per-page plain text in page order, pages joined by a
// newline. Pages that cannot be read are skipped; a file that cannot be
// opened is a hard failure.
//
// The library panics, not errors, on malformed object data that passes the
// header checks in pdf.Open. Those panics are converted to errors here so a
// corrupt upload fails one ingest instead of the process.
func (e *Extractor) Extract(_ context.Context, path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, pageText)
	}

	return strings.Join(pages, "\n"), nil
}
