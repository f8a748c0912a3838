package embedding

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_provider.go -package=mocks yoga-rag/internal/embedding Provider

import "context"

// Provider maps text to fixed-length numeric vectors. The same provider is
// used for indexing and querying, so all vectors from one instance have the
// same dimensionality.
type Provider interface {
	// EmbedTexts generates one embedding per input text, in input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
