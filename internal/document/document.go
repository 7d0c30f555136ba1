// Package document splits a markdown document into tracked sections. Each
// level-two heading starts a section; the heading text slugifies into the
// section's target id. Section order is document order.
package document

import (
	"fmt"
	"strings"
)

// Section is one tracked region of the document.
type Section struct {
	ID    string
	Title string
	Body  string // markdown, heading included
}

// Split cuts markdown into sections at "## " headings. Content before the
// first section heading is kept as a leading "overview" section when it has
// any non-blank line. Duplicate heading slugs get a numeric suffix so ids
// stay unique.
func Split(markdown string) []Section {
	lines := strings.Split(markdown, "\n")

	var sections []Section
	var current *Section
	var preamble []string
	seen := make(map[string]int)

	flush := func() {
		if current != nil {
			current.Body = strings.TrimRight(current.Body, "\n") + "\n"
			sections = append(sections, *current)
		}
	}

	for _, line := range lines {
		if title, ok := headingTitle(line); ok {
			flush()
			id := uniqueSlug(Slug(title), seen)
			current = &Section{ID: id, Title: title, Body: line + "\n"}
			continue
		}
		if current != nil {
			current.Body += line + "\n"
		} else {
			preamble = append(preamble, line)
		}
	}
	flush()

	if body := strings.TrimSpace(strings.Join(preamble, "\n")); body != "" {
		id := uniqueSlug("overview", seen)
		head := Section{
			ID:    id,
			Title: "Overview",
			Body:  strings.Join(preamble, "\n") + "\n",
		}
		sections = append([]Section{head}, sections...)
	}

	return sections
}

// IDs returns the section ids in document order.
func IDs(sections []Section) []string {
	ids := make([]string, len(sections))
	for i, s := range sections {
		ids[i] = s.ID
	}
	return ids
}

// Slug turns a heading title into a target id: lowercase, runs of
// non-alphanumerics collapsed to single dashes.
func Slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func headingTitle(line string) (string, bool) {
	if !strings.HasPrefix(line, "## ") {
		return "", false
	}
	title := strings.TrimSpace(strings.TrimPrefix(line, "## "))
	if title == "" {
		return "", false
	}
	return title, true
}

func uniqueSlug(slug string, seen map[string]int) string {
	if slug == "" {
		slug = "section"
	}
	seen[slug]++
	if n := seen[slug]; n > 1 {
		return fmt.Sprintf("%s-%d", slug, n)
	}
	return slug
}
