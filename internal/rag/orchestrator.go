// Package rag sequences safety classification, retrieval and generation into
// the end-to-end answer contract.
package rag

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"yoga-rag/internal/contextutil"
	"yoga-rag/internal/storage"
	"yoga-rag/internal/vectorstore"
)

const auditTimeout = 10 * time.Second

// Orchestrator runs the query pipeline: classify, then either short-circuit
// with the guard's message or retrieve and generate. Every request also emits
// one fire-and-forget audit record.
type Orchestrator struct {
	guard     Classifier
	retriever Retriever
	generator Generator
	audit     storage.AuditStore
}

// NewOrchestrator creates an orchestrator. All dependencies are constructed
// once at startup and shared across requests.
func NewOrchestrator(guard Classifier, retriever Retriever, generator Generator, audit storage.AuditStore) *Orchestrator {
	return &Orchestrator{
		guard:     guard,
		retriever: retriever,
		generator: generator,
		audit:     audit,
	}
}

// Answer processes one query end to end. Each stage runs at most once; no
// stage is retried. The only hard failure is ErrEmptyQuery.
func (o *Orchestrator) Answer(ctx context.Context, query string) (QueryResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	query = strings.TrimSpace(query)
	if query == "" {
		return QueryResult{}, ErrEmptyQuery
	}

	classification := o.guard.Classify(query)
	logger.InfoContext(ctx, "query classified",
		"stage", "classified",
		"safety_flag", classification.Category,
		"is_unsafe", classification.IsUnsafe(),
	)

	result := QueryResult{
		SafetyFlag:       classification.Category,
		IsUnsafe:         classification.IsUnsafe(),
		Sources:          []string{},
		RetrievedContext: []string{},
	}

	if classification.IsUnsafe() {
		// BLOCKED and UNSAFE short-circuit: the guard's message is the
		// answer and retrieval/generation are skipped entirely.
		logger.InfoContext(ctx, "query short-circuited", "stage", "short_circuited", "safety_flag", classification.Category)
		result.Answer = classification.Message
		o.dispatchAudit(ctx, query, result)
		return result, nil
	}

	passages, err := o.retriever.Retrieve(ctx, query)
	if err != nil {
		// Retrieval failure degrades to zero passages; the request itself
		// never fails at this stage.
		logger.ErrorContext(ctx, "retrieval failed, continuing with no passages", "stage", "retrieving", "error", err)
		passages = nil
	}
	logger.InfoContext(ctx, "retrieval finished", "stage", "retrieving", "passages", len(passages))

	for _, passage := range passages {
		result.Sources = append(result.Sources, sourceLabel(passage))
		result.RetrievedContext = append(result.RetrievedContext, passage.Content)
	}

	result.Answer = o.generator.Generate(ctx, query, result.RetrievedContext, classification.Category)
	logger.InfoContext(ctx, "generation finished", "stage", "generating", "answer_length", len(result.Answer))

	o.dispatchAudit(ctx, query, result)
	return result, nil
}

// dispatchAudit schedules the interaction log write without blocking the
// request path. The write may complete after the response has been returned;
// failures are logged and absorbed.
func (o *Orchestrator) dispatchAudit(ctx context.Context, query string, result QueryResult) {
	if o.audit == nil {
		return
	}

	logger := contextutil.LoggerFromContext(ctx)
	entry := storage.InteractionLog{
		Query:           query,
		Response:        result.Answer,
		RetrievedChunks: result.RetrievedContext,
		SafetyFlag:      string(result.SafetyFlag),
		IsUnsafe:        result.IsUnsafe,
		Timestamp:       time.Now().UTC(),
	}

	// Detach from the request's cancellation so the write can outlive the
	// response.
	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditTimeout)

	go func() {
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				logger.ErrorContext(auditCtx, "audit write panicked", "panic", r)
			}
		}()

		if err := o.audit.LogInteraction(auditCtx, entry); err != nil {
			logger.WarnContext(auditCtx, "audit write failed", "error", err)
		}
	}()
}

const unknownSource = "Unknown Source"

// sourceLabel derives the display label for a passage. A title embedded in
// the chunk's original_data JSON wins over the raw source filename; a parse
// failure falls back silently to the filename, then to a generic label.
func sourceLabel(passage vectorstore.Passage) string {
	label := unknownSource
	if source, ok := passage.Metadata["source"].(string); ok && source != "" {
		label = source
	}

	raw, ok := passage.Metadata["original_data"].(string)
	if !ok || raw == "" {
		return label
	}

	var original map[string]any
	if err := json.Unmarshal([]byte(raw), &original); err != nil {
		return label
	}
	if title, ok := original["title"].(string); ok && title != "" {
		return title
	}
	return label
}
