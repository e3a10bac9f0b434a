package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/sandevgo/archie/internal/core"
)

type DocumentsRepo struct {
	db *sql.DB
}

func NewDocumentsRepo(db *sql.DB) *DocumentsRepo {
	return &DocumentsRepo{db: db}
}

func (r *DocumentsRepo) Add(ctx context.Context, doc core.RetrievedDocument, embedding []float32) error {
	blob, err := serializeVector(embedding)
	if err != nil {
		return err
	}

	query := `INSERT INTO documents (content, source, author, creator, embedding) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, doc.Content, doc.Source, doc.Author, doc.Creator, blob); err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// Search scans the index and scores every passage by cosine similarity
// against the query vector. Results come back ordered best-first, capped
// at k. An empty index yields an empty slice, not an error.
func (r *DocumentsRepo) Search(ctx context.Context, embedding []float32, k int) ([]core.RetrievedDocument, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT content, source, author, creator, embedding FROM documents`)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var results []core.RetrievedDocument
	for rows.Next() {
		var doc core.RetrievedDocument
		var blob []byte
		if err := rows.Scan(&doc.Content, &doc.Source, &doc.Author, &doc.Creator, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		vec, err := deserializeVector(blob)
		if err != nil {
			return nil, err
		}
		doc.Score = cosineSimilarity(embedding, vec)
		results = append(results, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Count reports the number of indexed passages.
func (r *DocumentsRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return n, nil
}
