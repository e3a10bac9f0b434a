// Package adr turns generated markdown into a structured Architecture
// Decision Record. Identity fields come from the caller so the same
// generation always assembles to the same record.
package adr

import (
	"strings"

	"github.com/sandevgo/archie/internal/core"
)

type Metadata struct {
	ID       string
	Date     string
	Status   string
	Deciders []string
}

// Assemble parses the generated markdown and attaches the caller-supplied
// identity. Missing or empty sections are simply absent from the result;
// a record with zero sections is still returned, not an error.
func Assemble(generated string, meta Metadata) core.ADR {
	return core.ADR{
		ID:       meta.ID,
		Date:     meta.Date,
		Status:   meta.Status,
		Deciders: meta.Deciders,
		Sections: ParseSections(generated),
	}
}

// Render writes the record back out as markdown, for transports that
// return a single document.
func Render(a core.ADR) string {
	var b strings.Builder
	b.WriteString("# Architecture Decision Record\n\n")
	b.WriteString("- ID: " + a.ID + "\n")
	b.WriteString("- Date: " + a.Date + "\n")
	b.WriteString("- Status: " + a.Status + "\n")
	if len(a.Deciders) > 0 {
		b.WriteString("- Deciders: " + strings.Join(a.Deciders, ", ") + "\n")
	}
	for _, s := range a.Sections {
		b.WriteString("\n## " + s.Title + "\n\n")
		b.WriteString(s.Body)
		b.WriteString("\n")
	}
	return b.String()
}
