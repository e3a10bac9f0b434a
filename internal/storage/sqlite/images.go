package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/sandevgo/archie/internal/core"
)

type ImagesRepo struct {
	db *sql.DB
}

func NewImagesRepo(db *sql.DB) *ImagesRepo {
	return &ImagesRepo{db: db}
}

// Add indexes a diagram under its description embedding. Re-adding the
// same path replaces the previous description.
func (r *ImagesRepo) Add(ctx context.Context, path, description string, embedding []float32) error {
	blob, err := serializeVector(embedding)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO images (path, description, embedding) VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET description = excluded.description, embedding = excluded.embedding`
	if _, err := r.db.ExecContext(ctx, query, path, description, blob); err != nil {
		return fmt.Errorf("failed to insert image: %w", err)
	}
	return nil
}

func (r *ImagesRepo) Search(ctx context.Context, embedding []float32, topK int) ([]core.MatchedImage, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT path, embedding FROM images`)
	if err != nil {
		return nil, fmt.Errorf("failed to query images: %w", err)
	}
	defer rows.Close()

	var results []core.MatchedImage
	for rows.Next() {
		var img core.MatchedImage
		var blob []byte
		if err := rows.Scan(&img.Path, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}

		vec, err := deserializeVector(blob)
		if err != nil {
			return nil, err
		}
		img.Score = cosineSimilarity(embedding, vec)
		results = append(results, img)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}
