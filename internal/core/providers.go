package core

import "context"

// Generator is the text-generation backend boundary.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Embedder turns text into a vector for similarity search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// DocumentIndex is the semantic search backend over reference material.
type DocumentIndex interface {
	Add(ctx context.Context, doc RetrievedDocument, embedding []float32) error
	Search(ctx context.Context, embedding []float32, k int) ([]RetrievedDocument, error)
}

// ImageIndex is the semantic search backend over diagram descriptions.
type ImageIndex interface {
	Add(ctx context.Context, path, description string, embedding []float32) error
	Search(ctx context.Context, embedding []float32, topK int) ([]MatchedImage, error)
}
