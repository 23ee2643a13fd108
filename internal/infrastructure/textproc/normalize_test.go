package textproc

import (
	"strings"
	"testing"
)

func TestNormalizeFoldsScriptVariants(t *testing.T) {
	got := Normalize("علي كتاب")
	if strings.ContainsRune(got, 'ي') || strings.ContainsRune(got, 'ك') {
		t.Fatalf("variant glyphs survived normalization: %q", got)
	}
	if got != "علی کتاب" {
		t.Fatalf("unexpected folding result: %q", got)
	}
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	got := Normalize("a  \t b\n\n\n\nc")
	if got != "a b\nc" {
		t.Fatalf("Normalize() = %q, want %q", got, "a b\nc")
	}
}

func TestNormalizeTrims(t *testing.T) {
	if got := Normalize("  \n متن \t\n"); got != "متن" {
		t.Fatalf("Normalize() = %q, want trimmed text", got)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Fatalf("Normalize(\"\") = %q, want empty", got)
	}
	if got := Normalize("   \n\n\t"); got != "" {
		t.Fatalf("whitespace-only input must normalize to empty, got %q", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"علي  \t يكي\n\n\nدو",
		"  mixed فارسی and english \n\n lines  ",
		"a\nb\nc",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestNormalizeLeavesNoDoubleNewlines(t *testing.T) {
	got := Normalize("x\n\ny\n\n\nz\n \n\nw")
	if strings.Contains(got, "\n\n") {
		t.Fatalf("output contains consecutive newlines: %q", got)
	}
}
