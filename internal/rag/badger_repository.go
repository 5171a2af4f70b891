package rag

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/timshannon/badgerhold/v4"
)

// IndexedChunk is the record layout of the on-disk index. The process that
// builds the index must store values of this type, keyed by ID.
type IndexedChunk struct {
	ID        string
	Title     string
	Content   string
	SourceURL string
	Embedding []float32
}

// BadgerRepository searches a badger directory opened read-only.
type BadgerRepository struct {
	store *badgerhold.Store
}

func OpenBadgerRepository(dir string) (*BadgerRepository, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open index %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open index %s: not a directory", dir)
	}

	options := badgerhold.DefaultOptions
	options.Dir = dir
	options.ValueDir = dir
	options.ReadOnly = true
	options.Logger = nil

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open index %s: %w", dir, err)
	}

	return &BadgerRepository{store: store}, nil
}

func (r *BadgerRepository) Close() error {
	if r.store == nil {
		return nil
	}
	return r.store.Close()
}

// SearchSimilarChunks scans every stored chunk and returns the limit nearest
// by L2 distance. Equal distances keep storage order.
func (r *BadgerRepository) SearchSimilarChunks(ctx context.Context, embedding []float32, limit int) ([]DocChunk, error) {
	if limit <= 0 {
		limit = DefaultTopK
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var candidates []DocChunk
	err := r.store.ForEach(nil, func(rec *IndexedChunk) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(rec.Embedding) != len(embedding) {
			return fmt.Errorf("chunk %s has %d dimensions, query has %d", rec.ID, len(rec.Embedding), len(embedding))
		}
		candidates = append(candidates, DocChunk{
			ID:        rec.ID,
			Title:     rec.Title,
			Content:   rec.Content,
			SourceURL: rec.SourceURL,
			Distance:  l2Distance(rec.Embedding, embedding),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan index: %w", err)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Distance < candidates[j].Distance
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

func l2Distance(a, b []float32) float32 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return float32(math.Sqrt(sum))
}

var _ Repository = (*BadgerRepository)(nil)
