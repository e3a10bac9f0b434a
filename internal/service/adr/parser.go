package adr

import (
	"strings"

	"github.com/sandevgo/archie/internal/core"
)

// Headers the decision-record template asks the model for, in canonical
// order. Anything else the model emits is kept as an extra section.
var knownHeaders = []string{
	"Context",
	"Decision",
	"Consequences",
	"Alternatives Considered",
	"Related Decisions",
}

// ParseSections splits generated markdown into titled sections keyed on
// second-level headers. Text before the first header is dropped, section
// order follows the document, and sections whose body trims to nothing
// are omitted entirely.
func ParseSections(markdown string) []core.ADRSection {
	var sections []core.ADRSection
	var title string
	var body []string

	flush := func() {
		if title == "" {
			return
		}
		text := strings.TrimSpace(strings.Join(body, "\n"))
		if text == "" || isHeaderNoise(text) {
			return
		}
		sections = append(sections, core.ADRSection{Title: title, Body: text})
	}

	for _, line := range strings.Split(markdown, "\n") {
		if h, ok := headerTitle(line); ok {
			flush()
			title = h
			body = body[:0]
			continue
		}
		if title != "" {
			body = append(body, line)
		}
	}
	flush()

	return sections
}

func headerTitle(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "## ") || strings.HasPrefix(trimmed, "### ") {
		return "", false
	}
	title := strings.TrimSpace(strings.TrimPrefix(trimmed, "## "))
	title = strings.TrimSpace(strings.TrimRight(title, "#"))
	if title == "" {
		return "", false
	}
	return title, true
}

// Models sometimes fill a section with nothing but stray hash marks.
func isHeaderNoise(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		s := strings.TrimSpace(line)
		if s != "" && s != "#" {
			return false
		}
	}
	return true
}

// IsKnownHeader reports whether the title is one the template asks for.
func IsKnownHeader(title string) bool {
	for _, h := range knownHeaders {
		if strings.EqualFold(h, title) {
			return true
		}
	}
	return false
}
