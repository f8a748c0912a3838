package ingest

import (
	"context"
	"fmt"

	"yoga-rag/internal/chunker"
	"yoga-rag/internal/contextutil"
	"yoga-rag/internal/embedding"
	"yoga-rag/internal/vectorstore"
)

// embedBatchSize caps how many chunks go to the embedding service per call.
const embedBatchSize = 64

// Ingestor runs the load, chunk, embed, index pipeline for knowledge files.
type Ingestor struct {
	chunker  *chunker.Chunker
	embedder embedding.Provider
	index    vectorstore.VectorIndex
}

// NewIngestor creates an ingestor from its pipeline stages.
func NewIngestor(ch *chunker.Chunker, embedder embedding.Provider, index vectorstore.VectorIndex) *Ingestor {
	return &Ingestor{chunker: ch, embedder: embedder, index: index}
}

// IngestFile loads one file and indexes its chunks. It returns the number of
// chunks written. Re-ingesting an unchanged file overwrites the same points,
// so the operation is safe to repeat.
func (i *Ingestor) IngestFile(ctx context.Context, path string) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	docs, err := LoadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to load %s: %w", path, err)
	}

	chunks := i.chunker.SplitDocuments(docs)
	if len(chunks) == 0 {
		logger.WarnContext(ctx, "file produced no chunks", "path", path)
		return 0, nil
	}
	logger.InfoContext(ctx, "file loaded", "path", path, "documents", len(docs), "chunks", len(chunks))

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for j, chunk := range batch {
			texts[j] = chunk.Content
		}

		vectors, err := i.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return 0, fmt.Errorf("failed to embed chunks %d-%d: %w", start, end, err)
		}

		if err := i.index.Add(ctx, batch, vectors); err != nil {
			return 0, fmt.Errorf("failed to index chunks %d-%d: %w", start, end, err)
		}
	}

	return len(chunks), nil
}
