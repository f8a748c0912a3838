package vectorstore

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"yoga-rag/internal/chunker"
	"yoga-rag/internal/contextutil"
)

// pointNamespace is the UUID namespace for content-derived point IDs.
var pointNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// QdrantIndex implements VectorIndex using Qdrant with cosine similarity.
// The index is durable on the Qdrant side and shared between the ingestion
// and query paths.
type QdrantIndex struct {
	client     *qdrant.Client
	collection string
}

// NewQdrantIndex creates a new Qdrant-backed vector index.
// urlStr should be in the format "http://host:port" (e.g. "http://localhost:6333").
// The gRPC port (typically 6334) is derived from the HTTP port.
func NewQdrantIndex(urlStr, collection string) (*QdrantIndex, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsedURL.Hostname()
	if host == "" {
		host = "localhost"
	}

	port := 6334 // Default gRPC port
	if parsedURL.Port() != "" {
		httpPort, err := strconv.Atoi(parsedURL.Port())
		if err == nil {
			// gRPC port is typically HTTP port + 1
			port = httpPort + 1
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	return &QdrantIndex{
		client:     client,
		collection: collection,
	}, nil
}

// EnsureCollection ensures the collection exists with the specified vector
// size and cosine distance. If it already exists, the vector size must match.
func (s *QdrantIndex) EnsureCollection(ctx context.Context, vectorSize int) error {
	logger := contextutil.LoggerFromContext(ctx)

	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}

	if !exists {
		logger.InfoContext(ctx, "creating collection", "collection", s.collection, "vector_size", vectorSize)
		err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: s.collection,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     uint64(vectorSize),
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
		return nil
	}

	info, err := s.client.GetCollectionInfo(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("failed to get collection info: %w", err)
	}

	config := info.Config
	if config == nil || config.Params == nil {
		return fmt.Errorf("collection config is invalid")
	}
	vectorsConfig := config.Params.GetVectorsConfig()
	if vectorsConfig == nil {
		return fmt.Errorf("collection vectors config is invalid")
	}
	params := vectorsConfig.GetParams()
	if params == nil {
		return fmt.Errorf("collection vector params are invalid")
	}

	if int(params.Size) != vectorSize {
		return fmt.Errorf("collection vector size mismatch: expected %d, got %d", vectorSize, params.Size)
	}

	logger.InfoContext(ctx, "collection validated", "collection", s.collection, "vector_size", vectorSize)
	return nil
}

// Add upserts chunks with their vectors. len(chunks) must equal len(vectors).
func (s *QdrantIndex) Add(ctx context.Context, chunks []chunker.Chunk, vectors [][]float32) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunk/vector count mismatch: %d chunks, %d vectors", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, 0, len(chunks))
	for i, chunk := range chunks {
		payload := make(map[string]any, len(chunk.Metadata)+1)
		for k, v := range chunk.Metadata {
			payload[k] = v
		}
		payload["content"] = chunk.Content

		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(pointID(chunk)),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(payload),
		})
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points:         points,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to upsert points", "collection", s.collection, "count", len(points), "error", err)
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	logger.InfoContext(ctx, "upserted points", "collection", s.collection, "count", len(points))
	return nil
}

// Search performs a nearest-neighbor query and returns passages sorted
// ascending by cosine distance.
func (s *QdrantIndex) Search(ctx context.Context, queryVector []float32, k int) ([]Passage, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}

	limit := uint64(k)
	scoredPoints, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(queryVector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to search points", "collection", s.collection, "k", k, "error", err)
		return nil, fmt.Errorf("failed to search points: %w", err)
	}

	results := make([]Passage, 0, len(scoredPoints))
	for _, point := range scoredPoints {
		meta := make(map[string]any)
		if point.Payload != nil {
			meta = convertPayloadToMap(point.Payload)
		}

		content, _ := meta["content"].(string)
		delete(meta, "content")

		results = append(results, Passage{
			Content:  content,
			Metadata: meta,
			Score:    cosineDistance(point.Score),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score < results[j].Score
	})

	logger.InfoContext(ctx, "search completed", "collection", s.collection, "k", k, "results", len(results))
	return results, nil
}

// cosineDistance converts Qdrant's cosine similarity (higher = closer) to the
// cosine distance contract used throughout the pipeline (lower = closer).
func cosineDistance(similarity float32) float32 {
	return 1 - similarity
}

// pointID derives a deterministic point ID from the chunk's source, index and
// content, so re-ingesting identical content overwrites instead of piling up.
func pointID(chunk chunker.Chunk) string {
	source, _ := chunk.Metadata["source"].(string)
	index := 0
	if v, ok := chunk.Metadata["chunk_index"].(int); ok {
		index = v
	}
	seed := fmt.Sprintf("%s#%d#%s", source, index, chunk.Content)
	return uuid.NewSHA1(pointNamespace, []byte(seed)).String()
}

// convertPayloadToMap converts a Qdrant payload to map[string]any.
func convertPayloadToMap(payload map[string]*qdrant.Value) map[string]any {
	result := make(map[string]any, len(payload))
	for k, v := range payload {
		if v == nil {
			continue
		}
		result[k] = convertValue(v)
	}
	return result
}

// convertValue converts a Qdrant Value to a Go any value.
func convertValue(v *qdrant.Value) any {
	switch val := v.Kind.(type) {
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_ListValue:
		list := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			list[i] = convertValue(item)
		}
		return list
	case *qdrant.Value_StructValue:
		return convertPayloadToMap(val.StructValue.Fields)
	default:
		return nil
	}
}
