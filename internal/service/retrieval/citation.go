package retrieval

import (
	"fmt"
	"html"
	"path/filepath"
	"strings"

	"github.com/sandevgo/archie/internal/core"
)

// CitationFormatter renders retained documents as human-readable citation
// strings. With a base URL configured the source becomes a link the way
// the web client expects; otherwise citations stay plain text.
type CitationFormatter struct {
	fileBaseURL string
}

func NewCitationFormatter(fileBaseURL string) *CitationFormatter {
	return &CitationFormatter{fileBaseURL: fileBaseURL}
}

func (f *CitationFormatter) Format(docs []core.RetrievedDocument) []string {
	citations := make([]string, 0, len(docs))
	for i, doc := range docs {
		citations = append(citations, f.formatOne(i+1, doc))
	}
	return citations
}

func (f *CitationFormatter) formatOne(n int, doc core.RetrievedDocument) string {
	source := doc.Source
	if source == "" {
		source = "Unknown"
	}

	var rendered string
	if f.fileBaseURL != "" && doc.Source != "" {
		filename := filepath.Base(doc.Source)
		url := strings.TrimSuffix(f.fileBaseURL, "/") + "/" + filename
		rendered = fmt.Sprintf(`<a href="%s" target="_blank">%s</a>`, url, html.EscapeString(filename))
	} else {
		rendered = source
	}

	citation := fmt.Sprintf("Source %d: %s", n, rendered)
	if by := authorship(doc); by != "" {
		citation += fmt.Sprintf(" (%s)", by)
	}
	return citation
}

func authorship(doc core.RetrievedDocument) string {
	switch {
	case doc.Author != "":
		return doc.Author
	case doc.Creator != "":
		return doc.Creator
	default:
		return ""
	}
}
