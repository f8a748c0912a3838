// Package generation produces grounded answers from retrieved passages.
// The backend (remote chat-completion API or local Ollama model) is selected
// once at startup and never re-evaluated per call.
package generation

import (
	"context"
	"fmt"
	"strings"

	"yoga-rag/internal/contextutil"
	"yoga-rag/internal/safety"
)

// NoContextMessage is returned when there are no retrieved passages. It is a
// hard short-circuit: no backend is invoked.
const NoContextMessage = "I'm sorry, I couldn't find any relevant information in my knowledge base to answer your question."

// DegradedMessage is returned for every call when no remote credential is
// configured and the local backend failed to load at startup.
const DegradedMessage = "[ERROR] Remote generation key missing and local model unavailable."

// Request carries everything a backend needs to produce an answer.
type Request struct {
	System   string
	Query    string
	Passages []string
}

// Backend is a single generation capability. Implementations decide how much
// of the retrieved context fits their model.
type Backend interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Engine wraps the selected backend behind the pipeline's generation
// contract: Generate always returns an answer string, never an error.
type Engine struct {
	backend Backend // nil means degraded: every call returns DegradedMessage
}

// NewEngine creates a generation engine around the given backend.
func NewEngine(backend Backend) *Engine {
	return &Engine{backend: backend}
}

// NewDegradedEngine creates an engine whose every call returns the fixed
// diagnostic string. The process keeps serving safety and retrieval normally.
func NewDegradedEngine() *Engine {
	return &Engine{backend: nil}
}

// Degraded reports whether the engine has no usable backend.
func (e *Engine) Degraded() bool {
	return e.backend == nil
}

// Generate produces an answer for the query from the retrieved passages.
// Backend failures are converted to an error-string answer so the caller
// always receives a string from this stage.
func (e *Engine) Generate(ctx context.Context, query string, passages []string, category safety.Category) string {
	logger := contextutil.LoggerFromContext(ctx)

	if e.backend == nil {
		return DegradedMessage
	}

	if len(passages) == 0 {
		return NoContextMessage
	}

	answer, err := e.backend.Complete(ctx, Request{
		System:   systemPrompt(category),
		Query:    query,
		Passages: passages,
	})
	if err != nil {
		logger.ErrorContext(ctx, "generation backend failed", "error", err)
		return fmt.Sprintf("Error generating response: %s", err)
	}

	return strings.TrimSpace(answer)
}

// systemPrompt builds the grounding instruction: answer only from context,
// admit when the context does not contain the answer, and tighten the tone
// for sensitive queries.
func systemPrompt(category safety.Category) string {
	prompt := "You are a knowledgeable Yoga and Wellness assistant. " +
		"Answer the user's question strictly based on the provided Context below. " +
		"If the answer is not in the context, say 'I don't have enough information to answer that.' " +
		"Do not hallucinate or provide outside information. " +
		"Keep your answer concise, accurate, and friendly."

	if category == safety.CategorySensitive {
		prompt += " The user asked a sensitive question. Be extra careful and purely factual based on context."
	}

	return prompt
}
