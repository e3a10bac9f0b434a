// Package diagram surfaces architecture diagrams whose descriptions are
// close to a piece of text, as a secondary retrieval step alongside the
// main answer.
package diagram

import (
	"context"
	"fmt"

	"github.com/sandevgo/archie/internal/core"
	"github.com/sandevgo/archie/pkg/log"
)

type Matcher struct {
	embedder core.Embedder
	index    core.ImageIndex
}

func NewMatcher(embedder core.Embedder, index core.ImageIndex) *Matcher {
	return &Matcher{
		embedder: embedder,
		index:    index,
	}
}

// Match returns locators of indexed diagrams whose description similarity
// clears threshold, best first, at most topK. An empty result is normal
// and is never an error.
func (m *Matcher) Match(ctx context.Context, text string, threshold float64, topK int) ([]string, error) {
	vec, err := m.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed diagram query: %w", err)
	}

	matches, err := m.index.Search(ctx, vec, topK)
	if err != nil {
		return nil, fmt.Errorf("search image index: %w", err)
	}

	paths := make([]string, 0, len(matches))
	for _, img := range matches {
		if img.Score < threshold {
			continue
		}
		paths = append(paths, img.Path)
		log.FromCtx(ctx).Debug().
			Str("path", img.Path).
			Float64("score", img.Score).
			Msg("diagram matched")
	}
	return paths, nil
}
