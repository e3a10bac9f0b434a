package sqlite

import (
	"context"
	"testing"

	"github.com/sandevgo/archie/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DocumentsRepo {
	t.Helper()
	db, err := NewDB(context.Background(), t.TempDir()+"/archie.db")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewDocumentsRepo(db)
}

func TestDocumentsRepo_SearchRanking(t *testing.T) {
	ctx := context.Background()
	repo := newTestDB(t)

	docs := []struct {
		doc core.RetrievedDocument
		vec []float32
	}{
		{core.RetrievedDocument{Content: "microservices patterns", Source: "patterns.pdf"}, []float32{1, 0, 0}},
		{core.RetrievedDocument{Content: "event sourcing basics", Source: "events.pdf"}, []float32{0, 1, 0}},
		{core.RetrievedDocument{Content: "monolith first", Source: "monolith.pdf"}, []float32{0.9, 0.1, 0}},
	}
	for _, d := range docs {
		require.NoError(t, repo.Add(ctx, d.doc, d.vec))
	}

	got, err := repo.Search(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "patterns.pdf", got[0].Source)
	assert.Equal(t, "monolith.pdf", got[1].Source)
	assert.Greater(t, got[0].Score, got[1].Score)
}

func TestDocumentsRepo_SearchEmptyIndex(t *testing.T) {
	repo := newTestDB(t)

	got, err := repo.Search(context.Background(), []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Equal(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{1}))
	assert.Equal(t, 0.0, cosineSimilarity(nil, nil))
}

func TestVectorRoundTrip(t *testing.T) {
	in := []float32{0.25, -1.5, 3.75}
	blob, err := serializeVector(in)
	require.NoError(t, err)

	out, err := deserializeVector(blob)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = deserializeVector([]byte{1, 2, 3})
	assert.Error(t, err)
}
