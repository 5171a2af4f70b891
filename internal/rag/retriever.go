package rag

import (
	"context"
	"fmt"
)

const DefaultTopK = 4

// VectorRetriever embeds the query and asks the index for its nearest chunks.
type VectorRetriever struct {
	embeddings EmbeddingsClient
	repo       Repository
	topK       int
}

func NewVectorRetriever(embeddings EmbeddingsClient, repo Repository, topK int) *VectorRetriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &VectorRetriever{
		embeddings: embeddings,
		repo:       repo,
		topK:       topK,
	}
}

func (r *VectorRetriever) Retrieve(ctx context.Context, query string) ([]DocChunk, error) {
	vec, err := r.embeddings.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	chunks, err := r.repo.SearchSimilarChunks(ctx, vec, r.topK)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	return chunks, nil
}

var _ Retriever = (*VectorRetriever)(nil)
