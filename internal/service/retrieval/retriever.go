// Package retrieval wraps the semantic document index: query embedding,
// ranked search, source deduplication and citation rendering.
package retrieval

import (
	"context"
	"fmt"

	"github.com/sandevgo/archie/internal/core"
	"github.com/sandevgo/archie/pkg/log"
)

type Retriever struct {
	embedder core.Embedder
	index    core.DocumentIndex
}

func NewRetriever(embedder core.Embedder, index core.DocumentIndex) *Retriever {
	return &Retriever{
		embedder: embedder,
		index:    index,
	}
}

// Retrieve returns the k best passages for the query, best-first. Scoring
// is delegated to the index; the only policy here is the retrieval count.
// No matches is an empty slice, not an error; callers treat empty as the
// "insufficient context" condition.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]core.RetrievedDocument, error) {
	vec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	docs, err := r.index.Search(ctx, vec, k)
	if err != nil {
		return nil, fmt.Errorf("document search failed: %w", err)
	}

	log.FromCtx(ctx).Debug().Int("count", len(docs)).Msg("retrieved context documents")
	return docs, nil
}
