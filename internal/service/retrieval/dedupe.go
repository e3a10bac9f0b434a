package retrieval

import "github.com/sandevgo/archie/internal/core"

// Dedupe collapses documents citing the same source, keeping the first
// occurrence. Input order is preserved, so the index's ranking decides
// which duplicate wins. Documents without a source are always kept.
func Dedupe(docs []core.RetrievedDocument) (unique, duplicates []core.RetrievedDocument) {
	seen := make(map[string]struct{}, len(docs))

	for _, doc := range docs {
		if doc.Source == "" {
			unique = append(unique, doc)
			continue
		}
		if _, ok := seen[doc.Source]; ok {
			duplicates = append(duplicates, doc)
			continue
		}
		seen[doc.Source] = struct{}{}
		unique = append(unique, doc)
	}

	return unique, duplicates
}
