package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_index.go -package=mocks yoga-rag/internal/vectorstore VectorIndex

import (
	"context"

	"yoga-rag/internal/chunker"
)

// Passage is a retrieved chunk with its distance to the query vector.
// Score is a cosine distance: lower means more similar. It is an opaque
// ranking key, not bounded to [0, 1].
type Passage struct {
	Content  string
	Metadata map[string]any
	Score    float32
}

// VectorIndex persists chunk vectors with their content and metadata and
// answers nearest-neighbor similarity queries.
type VectorIndex interface {
	// Add associates each chunk's content and metadata with its vector under a
	// content-derived identifier. Safe to call incrementally across ingestion
	// runs; re-adding identical content overwrites the existing point, so
	// duplicate suppression is best-effort ("at least once"), not guaranteed.
	Add(ctx context.Context, chunks []chunker.Chunk, vectors [][]float32) error

	// Search returns up to k passages sorted ascending by distance (nearest
	// first). Returns fewer than k results if the index holds fewer items and
	// an empty slice if the index is empty.
	Search(ctx context.Context, queryVector []float32, k int) ([]Passage, error)
}
