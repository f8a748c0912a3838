// Package retrieval produces top-k scored passages for a query by embedding
// the query and delegating to the vector index.
package retrieval

import (
	"context"
	"fmt"

	"yoga-rag/internal/contextutil"
	"yoga-rag/internal/embedding"
	"yoga-rag/internal/vectorstore"
)

// Engine retrieves the most similar passages for a query. There is no caching
// across calls: every query is re-embedded and re-searched.
type Engine struct {
	embedder embedding.Provider
	index    vectorstore.VectorIndex
	topK     int
}

// NewEngine creates a retrieval engine with a fixed top-k configured at
// process scope.
func NewEngine(embedder embedding.Provider, index vectorstore.VectorIndex, topK int) *Engine {
	return &Engine{
		embedder: embedder,
		index:    index,
		topK:     topK,
	}
}

// Retrieve embeds the query once and returns up to topK passages sorted by
// ascending distance. Zero results is a valid outcome, not an error.
func (e *Engine) Retrieve(ctx context.Context, query string) ([]vectorstore.Passage, error) {
	logger := contextutil.LoggerFromContext(ctx)

	vectors, err := e.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no embedding returned for query")
	}

	passages, err := e.index.Search(ctx, vectors[0], e.topK)
	if err != nil {
		return nil, fmt.Errorf("failed to search index: %w", err)
	}

	logger.InfoContext(ctx, "retrieval completed", "k", e.topK, "results", len(passages))
	return passages, nil
}
