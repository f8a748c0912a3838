package rag

import (
	"context"
	"errors"

	"yoga-rag/internal/safety"
	"yoga-rag/internal/vectorstore"
)

// ErrEmptyQuery is returned when the query is empty or whitespace-only.
// It is the only error surfaced to the caller as a hard failure; every other
// stage degrades into a structurally valid QueryResult.
var ErrEmptyQuery = errors.New("query cannot be empty")

// QueryResult is the caller-facing answer contract. Sources and
// RetrievedContext are ordered by retrieval rank.
type QueryResult struct {
	Answer           string
	SafetyFlag       safety.Category
	IsUnsafe         bool
	Sources          []string
	RetrievedContext []string
}

// Classifier classifies a raw query before retrieval or generation runs.
type Classifier interface {
	Classify(query string) safety.Classification
}

// Retriever produces top-k scored passages for a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]vectorstore.Passage, error)
}

// Generator produces a grounded answer string. It never fails: backend
// errors are converted to answer strings inside the generation engine.
type Generator interface {
	Generate(ctx context.Context, query string, passages []string, category safety.Category) string
}
