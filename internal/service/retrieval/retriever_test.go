package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/sandevgo/archie/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	vec []float32
	err error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return f.vec, f.err
}

type fakeIndex struct {
	docs  []core.RetrievedDocument
	err   error
	gotK  int
	calls int
}

func (f *fakeIndex) Add(ctx context.Context, doc core.RetrievedDocument, embedding []float32) error {
	return nil
}

func (f *fakeIndex) Search(ctx context.Context, embedding []float32, k int) ([]core.RetrievedDocument, error) {
	f.calls++
	f.gotK = k
	return f.docs, f.err
}

func TestRetriever_Retrieve(t *testing.T) {
	index := &fakeIndex{docs: []core.RetrievedDocument{{Content: "doc", Source: "a.pdf", Score: 0.8}}}
	r := NewRetriever(&fakeEmbedder{vec: []float32{1, 0}}, index)

	docs, err := r.Retrieve(context.Background(), "scalability", 5)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, 5, index.gotK)
	assert.Equal(t, "a.pdf", docs[0].Source)
}

func TestRetriever_EmptyResultIsNotAnError(t *testing.T) {
	r := NewRetriever(&fakeEmbedder{vec: []float32{1, 0}}, &fakeIndex{})

	docs, err := r.Retrieve(context.Background(), "scalability", 5)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestRetriever_EmbedderFailure(t *testing.T) {
	index := &fakeIndex{}
	r := NewRetriever(&fakeEmbedder{err: errors.New("backend down")}, index)

	_, err := r.Retrieve(context.Background(), "scalability", 5)
	require.Error(t, err)
	assert.Zero(t, index.calls, "index must not be hit when embedding fails")
}
