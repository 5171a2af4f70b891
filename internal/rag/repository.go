package rag

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// Repository is the read side of a persisted vector index. Nothing in this
// module writes to it.
type Repository interface {
	SearchSimilarChunks(ctx context.Context, embedding []float32, limit int) ([]DocChunk, error)
}

type PgRepository struct {
	db *pgxpool.Pool
}

func NewPgRepository(db *pgxpool.Pool) *PgRepository {
	return &PgRepository{db: db}
}

// SearchSimilarChunks faz a busca vetorial (distância L2, menor primeiro).
func (r *PgRepository) SearchSimilarChunks(ctx context.Context, embedding []float32, limit int) ([]DocChunk, error) {
	if limit <= 0 {
		limit = DefaultTopK
	}

	vec := pgvector.NewVector(embedding)

	rows, err := r.db.Query(ctx, `
		SELECT
			c.id::text, c.title, c.content, c.source_url,
			(e.embedding <-> $1)::real AS distance
		FROM doc_chunk c
		JOIN doc_chunk_embedding e ON c.id = e.chunk_id
		ORDER BY e.embedding <-> $1
		LIMIT $2
	`, vec, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []DocChunk
	for rows.Next() {
		var c DocChunk
		if err := rows.Scan(
			&c.ID,
			&c.Title,
			&c.Content,
			&c.SourceURL,
			&c.Distance,
		); err != nil {
			return nil, err
		}
		chunks = append(chunks, c)
	}

	return chunks, rows.Err()
}

var _ Repository = (*PgRepository)(nil)
