package service

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSummarizeContent(t *testing.T) {
	if got := summarizeContent("# Title\n\n**Bold** `code` text", 100); got != "Title Bold code text" {
		t.Fatalf("unexpected summary %q", got)
	}

	long := summarizeContent(strings.Repeat("abcdefghij ", 30), 50)
	if utf8.RuneCountInString(long) > 50 {
		t.Fatalf("expected summary of at most 50 runes, got %d", utf8.RuneCountInString(long))
	}
	if !strings.HasSuffix(long, "…") {
		t.Fatalf("expected ellipsis, got %q", long)
	}

	if got := summarizeContent("###", 10); got != "" {
		t.Fatalf("expected empty summary, got %q", got)
	}
}

func TestCalculateReadingTime(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 0},
		{1, 1},
		{200, 1},
		{201, 2},
		{1000, 5},
	}
	for _, tt := range tests {
		if got := calculateReadingTime(strings.Repeat("w ", tt.words)); got != tt.want {
			t.Fatalf("%d words: expected %d minutes, got %d", tt.words, tt.want, got)
		}
	}
}

func TestCleanList(t *testing.T) {
	got := cleanList([]string{" Go ", "", "go", "Cloud", "  "})
	if len(got) != 2 || got[0] != "Go" || got[1] != "Cloud" {
		t.Fatalf("unexpected list %v", got)
	}
}

func TestNormalizePerPage(t *testing.T) {
	if normalizePerPage(0, 10) != 10 {
		t.Fatal("expected fallback")
	}
	if normalizePerPage(1000, 10) != maxPerPage {
		t.Fatal("expected cap")
	}
	if calculateTotalPages(0, 10) != 1 || calculateTotalPages(21, 10) != 3 {
		t.Fatal("unexpected total pages")
	}
}
