package ingest

import (
	"testing"
)

func TestChunkText(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		cfg            ChunkerConfig
		expectedChunks []string
	}{
		{
			name:           "empty input",
			text:           "",
			cfg:            DefaultChunkerConfig(),
			expectedChunks: nil,
		},
		{
			name:           "whitespace only",
			text:           "   \n\t   ",
			cfg:            DefaultChunkerConfig(),
			expectedChunks: nil,
		},
		{
			name:           "single sentence fits",
			text:           "Prefer boring technology.",
			cfg:            ChunkerConfig{MaxTokens: 10},
			expectedChunks: []string{"Prefer boring technology."},
		},
		{
			name:           "two sentences pack into one chunk",
			text:           "Prefer boring technology. Ship early.",
			cfg:            ChunkerConfig{MaxTokens: 20},
			expectedChunks: []string{"Prefer boring technology. Ship early."},
		},
		{
			name: "split on sentence boundary without overlap",
			text: "First sentence. Second sentence.",
			cfg:  ChunkerConfig{MaxTokens: 3},
			expectedChunks: []string{
				"First sentence.",
				"Second sentence.",
			},
		},
		{
			name: "overlap carries the previous sentence",
			text: "Alpha beta gamma. Delta epsilon zeta.",
			cfg:  ChunkerConfig{MaxTokens: 6, OverlapTokens: 6},
			expectedChunks: []string{
				"Alpha beta gamma.",
				"Alpha beta gamma. Delta epsilon zeta.",
			},
		},
		{
			name: "soft wraps collapse inside a paragraph",
			text: "One line\nwrapped softly.",
			cfg:  ChunkerConfig{MaxTokens: 20},
			expectedChunks: []string{
				"One line wrapped softly.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := ChunkText(tt.text, tt.cfg)

			if len(chunks) != len(tt.expectedChunks) {
				t.Fatalf("got %d chunks, want %d: %+v", len(chunks), len(tt.expectedChunks), chunks)
			}
			for i, want := range tt.expectedChunks {
				if chunks[i].Text != want {
					t.Errorf("chunk %d = %q, want %q", i, chunks[i].Text, want)
				}
				if chunks[i].Index != i {
					t.Errorf("chunk %d has index %d", i, chunks[i].Index)
				}
			}
		})
	}
}

func TestChunkTextLongSentenceSlicedByTokens(t *testing.T) {
	text := "word word word word word word word word word word word word"
	chunks := ChunkText(text, ChunkerConfig{MaxTokens: 4})

	if len(chunks) < 2 {
		t.Fatalf("expected the sentence to be sliced, got %d chunks", len(chunks))
	}
	for _, c := range chunks {
		if c.TokenSize > 4 {
			t.Errorf("chunk exceeds token budget: %d tokens", c.TokenSize)
		}
	}
}
