package vectorstore

import (
	"testing"

	"github.com/qdrant/go-client/qdrant"

	"yoga-rag/internal/chunker"
)

func TestNewQdrantIndex(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "valid url", url: "http://localhost:6333", wantErr: false},
		{name: "url without port", url: "http://qdrant.internal", wantErr: false},
		{name: "invalid url", url: "://bad", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewQdrantIndex(tt.url, "test")
			if (err != nil) != tt.wantErr {
				t.Errorf("NewQdrantIndex(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestCosineDistance(t *testing.T) {
	tests := []struct {
		name       string
		similarity float32
		want       float32
	}{
		{name: "identical vectors", similarity: 1.0, want: 0.0},
		{name: "orthogonal vectors", similarity: 0.0, want: 1.0},
		{name: "opposite vectors", similarity: -1.0, want: 2.0},
		{name: "partial match", similarity: 0.75, want: 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cosineDistance(tt.similarity); got != tt.want {
				t.Errorf("cosineDistance(%v) = %v, want %v", tt.similarity, got, tt.want)
			}
		})
	}
}

func TestPointID_Deterministic(t *testing.T) {
	chunk := chunker.Chunk{
		Content:  "Yoga is a practice of body and mind.",
		Metadata: map[string]any{"source": "yoga.json", "chunk_index": 2},
	}

	first := pointID(chunk)
	second := pointID(chunk)
	if first != second {
		t.Errorf("pointID not deterministic: %s != %s", first, second)
	}
}

func TestPointID_DistinguishesChunks(t *testing.T) {
	base := chunker.Chunk{
		Content:  "Yoga is a practice of body and mind.",
		Metadata: map[string]any{"source": "yoga.json", "chunk_index": 0},
	}

	differentContent := chunker.Chunk{
		Content:  "Pranayama is breath control.",
		Metadata: map[string]any{"source": "yoga.json", "chunk_index": 0},
	}
	differentIndex := chunker.Chunk{
		Content:  base.Content,
		Metadata: map[string]any{"source": "yoga.json", "chunk_index": 1},
	}
	differentSource := chunker.Chunk{
		Content:  base.Content,
		Metadata: map[string]any{"source": "other.json", "chunk_index": 0},
	}

	baseID := pointID(base)
	for name, other := range map[string]chunker.Chunk{
		"content": differentContent,
		"index":   differentIndex,
		"source":  differentSource,
	} {
		if pointID(other) == baseID {
			t.Errorf("pointID collision for differing %s", name)
		}
	}
}

func TestConvertValue(t *testing.T) {
	tests := []struct {
		name  string
		value *qdrant.Value
		want  any
	}{
		{
			name:  "string",
			value: &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: "hatha"}},
			want:  "hatha",
		},
		{
			name:  "integer",
			value: &qdrant.Value{Kind: &qdrant.Value_IntegerValue{IntegerValue: 3}},
			want:  int64(3),
		},
		{
			name:  "double",
			value: &qdrant.Value{Kind: &qdrant.Value_DoubleValue{DoubleValue: 0.5}},
			want:  0.5,
		},
		{
			name:  "bool",
			value: &qdrant.Value{Kind: &qdrant.Value_BoolValue{BoolValue: true}},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := convertValue(tt.value); got != tt.want {
				t.Errorf("convertValue() = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestConvertPayloadToMap(t *testing.T) {
	payload := map[string]*qdrant.Value{
		"source":      {Kind: &qdrant.Value_StringValue{StringValue: "yoga.json"}},
		"chunk_index": {Kind: &qdrant.Value_IntegerValue{IntegerValue: 1}},
		"nil-value":   nil,
	}

	got := convertPayloadToMap(payload)
	if got["source"] != "yoga.json" {
		t.Errorf("source = %v, want yoga.json", got["source"])
	}
	if got["chunk_index"] != int64(1) {
		t.Errorf("chunk_index = %v, want 1", got["chunk_index"])
	}
	if _, ok := got["nil-value"]; ok {
		t.Error("nil payload value should be skipped")
	}
}
