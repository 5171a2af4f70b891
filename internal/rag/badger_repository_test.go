package rag

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timshannon/badgerhold/v4"
)

// writeIndex stands in for the external process that builds the index.
func writeIndex(t *testing.T, chunks []IndexedChunk) string {
	t.Helper()

	dir := t.TempDir()
	options := badgerhold.DefaultOptions
	options.Dir = dir
	options.ValueDir = dir
	options.Logger = nil

	store, err := badgerhold.Open(options)
	require.NoError(t, err)
	for _, c := range chunks {
		c := c
		require.NoError(t, store.Insert(c.ID, &c))
	}
	require.NoError(t, store.Close())

	return dir
}

func TestBadgerRepositorySearch(t *testing.T) {
	dir := writeIndex(t, []IndexedChunk{
		{ID: "a", Title: "habitat", Content: "石虎棲息於淺山", Embedding: []float32{1, 0, 0}},
		{ID: "b", Title: "roadkill", Content: "路殺是主要威脅", Embedding: []float32{0, 1, 0}},
		{ID: "c", Title: "diet", Content: "以鼠類為食", Embedding: []float32{0.9, 0.1, 0}},
	})

	repo, err := OpenBadgerRepository(dir)
	require.NoError(t, err)
	defer repo.Close()

	t.Run("nearest first", func(t *testing.T) {
		chunks, err := repo.SearchSimilarChunks(context.Background(), []float32{1, 0, 0}, 2)
		require.NoError(t, err)
		require.Len(t, chunks, 2)
		assert.Equal(t, "a", chunks[0].ID)
		assert.Equal(t, "c", chunks[1].ID)
		assert.Equal(t, "石虎棲息於淺山", chunks[0].Content)
		assert.InDelta(t, 0, chunks[0].Distance, 1e-6)
		assert.Less(t, chunks[0].Distance, chunks[1].Distance)
	})

	t.Run("default limit", func(t *testing.T) {
		chunks, err := repo.SearchSimilarChunks(context.Background(), []float32{0, 1, 0}, 0)
		require.NoError(t, err)
		require.Len(t, chunks, 3)
		assert.Equal(t, "b", chunks[0].ID)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := repo.SearchSimilarChunks(context.Background(), []float32{1, 0}, 2)
		assert.Error(t, err)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := repo.SearchSimilarChunks(ctx, []float32{1, 0, 0}, 2)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestBadgerRepositoryEmptyIndex(t *testing.T) {
	dir := writeIndex(t, nil)

	repo, err := OpenBadgerRepository(dir)
	require.NoError(t, err)
	defer repo.Close()

	chunks, err := repo.SearchSimilarChunks(context.Background(), []float32{1, 0, 0}, 4)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestOpenBadgerRepositoryMissingDir(t *testing.T) {
	_, err := OpenBadgerRepository(filepath.Join(t.TempDir(), "shihu_db"))
	assert.Error(t, err)
}

func TestOpenBadgerRepositoryNotAnIndex(t *testing.T) {
	_, err := OpenBadgerRepository(t.TempDir())
	assert.Error(t, err)
}

func TestL2Distance(t *testing.T) {
	assert.InDelta(t, 5, l2Distance([]float32{0, 0}, []float32{3, 4}), 1e-6)
	assert.InDelta(t, 0, l2Distance([]float32{1, 2}, []float32{1, 2}), 1e-6)
}
