package document

import (
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	md := `# My Doc

Some introduction text.

## Getting Started

Install it.

## API Reference

Call it.

## Getting Started

Again, somehow.
`
	sections := Split(md)

	wantIDs := []string{"overview", "getting-started", "api-reference", "getting-started-2"}
	got := IDs(sections)
	if len(got) != len(wantIDs) {
		t.Fatalf("Split() produced ids %v, want %v", got, wantIDs)
	}
	for i := range wantIDs {
		if got[i] != wantIDs[i] {
			t.Errorf("section %d id = %q, want %q", i, got[i], wantIDs[i])
		}
	}

	if sections[0].Title != "Overview" {
		t.Errorf("preamble title = %q, want Overview", sections[0].Title)
	}
	if !strings.Contains(sections[1].Body, "Install it.") {
		t.Errorf("section body lost content: %q", sections[1].Body)
	}
	if !strings.HasPrefix(sections[2].Body, "## API Reference") {
		t.Errorf("section body should start with its heading: %q", sections[2].Body)
	}
}

func TestSplitNoPreamble(t *testing.T) {
	md := "## Only Section\n\nbody\n"
	sections := Split(md)
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	if sections[0].ID != "only-section" {
		t.Errorf("id = %q, want only-section", sections[0].ID)
	}
}

func TestSplitEmptyDocument(t *testing.T) {
	if sections := Split(""); len(sections) != 0 {
		t.Errorf("Split(\"\") = %v, want no sections", sections)
	}
	if sections := Split("\n\n  \n"); len(sections) != 0 {
		t.Errorf("blank doc produced sections: %v", sections)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Getting Started", "getting-started"},
		{"API & Reference!", "api-reference"},
		{"  spaced   out  ", "spaced-out"},
		{"C'est déjà vu", "c-est-d-j-vu"},
		{"123 Numbers", "123-numbers"},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
