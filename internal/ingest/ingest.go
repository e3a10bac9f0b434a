// Package ingest builds the document and image indexes from reference
// material on disk. Runs offline via the CLI, never in the request path,
// so embedding calls here may retry.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandevgo/archie/internal/core"
	"github.com/sandevgo/archie/pkg/log"
	"github.com/sandevgo/archie/pkg/retry"
)

type Ingester struct {
	embedder core.Embedder
	docs     core.DocumentIndex
	images   core.ImageIndex
	chunker  ChunkerConfig
	retrier  *retry.Retrier
}

func NewIngester(embedder core.Embedder, docs core.DocumentIndex, images core.ImageIndex) *Ingester {
	return &Ingester{
		embedder: embedder,
		docs:     docs,
		images:   images,
		chunker:  DefaultChunkerConfig(),
		retrier:  retry.NewDefaultRetrier(),
	}
}

// Documents walks dataDir, chunks every markdown and plain-text file and
// writes embedded chunks to the document index. Returns the number of
// chunks indexed.
func (in *Ingester) Documents(ctx context.Context, dataDir string) (int, error) {
	total := 0

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isTextFile(path) {
			return nil
		}

		n, err := in.ingestFile(ctx, dataDir, path)
		if err != nil {
			return fmt.Errorf("ingest %s: %w", path, err)
		}
		total += n
		return nil
	})
	if err != nil {
		return total, err
	}
	return total, nil
}

func (in *Ingester) ingestFile(ctx context.Context, dataDir, path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	source, err := filepath.Rel(dataDir, path)
	if err != nil {
		source = path
	}

	chunks := ChunkText(string(content), in.chunker)
	for _, chunk := range chunks {
		vec, err := in.embedWithRetry(ctx, chunk.Text)
		if err != nil {
			return 0, err
		}

		doc := core.RetrievedDocument{
			Content: chunk.Text,
			Source:  source,
		}
		if err := in.docs.Add(ctx, doc, vec); err != nil {
			return 0, err
		}
	}

	log.FromCtx(ctx).Info().
		Str("source", source).
		Int("chunks", len(chunks)).
		Msg("document indexed")
	return len(chunks), nil
}

// imageEntry is one record of the diagram manifest: where the image
// lives and what it depicts.
type imageEntry struct {
	Path        string `json:"path"`
	Description string `json:"description"`
}

// Images indexes diagram descriptions from a JSON manifest. Re-running
// with the same manifest updates descriptions in place.
func (in *Ingester) Images(ctx context.Context, manifestPath string) (int, error) {
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return 0, fmt.Errorf("read manifest: %w", err)
	}

	var entries []imageEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return 0, fmt.Errorf("parse manifest: %w", err)
	}

	for _, e := range entries {
		if e.Path == "" || e.Description == "" {
			return 0, fmt.Errorf("manifest entry needs both path and description: %+v", e)
		}

		vec, err := in.embedWithRetry(ctx, e.Description)
		if err != nil {
			return 0, err
		}
		if err := in.images.Add(ctx, e.Path, e.Description, vec); err != nil {
			return 0, fmt.Errorf("index image %s: %w", e.Path, err)
		}

		log.FromCtx(ctx).Info().Str("path", e.Path).Msg("image indexed")
	}
	return len(entries), nil
}

func (in *Ingester) embedWithRetry(ctx context.Context, text string) ([]float32, error) {
	var vec []float32
	err := in.retrier.Do(ctx, func() error {
		var err error
		vec, err = in.embedder.Embed(ctx, text)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("embed chunk: %w", err)
	}
	return vec, nil
}

func isTextFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".txt", ".markdown":
		return true
	default:
		return false
	}
}
