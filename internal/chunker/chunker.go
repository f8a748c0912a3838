// Package chunker splits normalized document text into overlapping
// fixed-size windows for embedding and indexing.
package chunker

import "fmt"

// Document is a normalized source document ready for chunking.
type Document struct {
	Content  string
	Metadata map[string]any
}

// Chunk is a bounded piece of a document. Metadata carries the originating
// document's metadata plus a zero-based chunk_index within that document.
type Chunk struct {
	Content  string
	Metadata map[string]any
}

// Chunker splits text using a sliding window with overlap.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
}

// New creates a Chunker. chunkSize must be positive and chunkOverlap must be
// non-negative and strictly smaller than chunkSize.
func New(chunkSize, chunkOverlap int) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("chunk overlap must be in [0, %d), got %d", chunkSize, chunkOverlap)
	}
	return &Chunker{chunkSize: chunkSize, chunkOverlap: chunkOverlap}, nil
}

// Split splits text into overlapping chunks. The final chunk may be shorter
// than the chunk size and is not padded. Empty text yields no chunks.
// Window boundaries are computed over runes so multi-byte characters are
// never split.
func (c *Chunker) Split(text string) []string {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	textLen := len(runes)

	var chunks []string
	start := 0
	for start < textLen {
		end := start + c.chunkSize
		if end > textLen {
			end = textLen
		}
		chunks = append(chunks, string(runes[start:end]))

		// The loop terminates the moment a window reaches the end of the text.
		if end >= textLen {
			break
		}
		start += c.chunkSize - c.chunkOverlap
	}

	return chunks
}

// SplitDocuments chunks each document and stamps every output chunk with the
// source document's metadata plus a chunk_index counting from zero within
// that document. Documents with empty content contribute no chunks.
func (c *Chunker) SplitDocuments(documents []Document) []Chunk {
	var chunked []Chunk
	for _, doc := range documents {
		for i, text := range c.Split(doc.Content) {
			meta := make(map[string]any, len(doc.Metadata)+1)
			for k, v := range doc.Metadata {
				meta[k] = v
			}
			meta["chunk_index"] = i

			chunked = append(chunked, Chunk{
				Content:  text,
				Metadata: meta,
			})
		}
	}
	return chunked
}
